package lookup

import "encoding/json"

// Envelope is the decoded backend response, decided once at the parse
// boundary: either a code-tagged envelope or a raw passthrough body. Call
// sites never re-inspect the body shape.
type Envelope struct {
	Tagged bool
	Code   int
	Msg    string
	Data   interface{}
	Raw    interface{}
}

// Success codes: 200 on the wire, 0 in the legacy mock convention.
func (e *Envelope) Success() bool {
	return e.Code == 200 || e.Code == 0
}

// DecodeEnvelope parses a response body. A JSON object carrying a "code" key
// decodes as a tagged envelope; anything else decodes as a raw body. A
// non-numeric code is kept as a tagged failure rather than a raw body, since
// the backend clearly intended the envelope convention.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return interpretBody(parsed), nil
}

func interpretBody(parsed interface{}) *Envelope {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return &Envelope{Raw: parsed}
	}
	codeVal, ok := obj["code"]
	if !ok {
		return &Envelope{Raw: parsed}
	}

	env := &Envelope{Tagged: true, Data: obj["data"]}
	switch c := codeVal.(type) {
	case float64:
		env.Code = int(c)
	default:
		env.Code = -1
	}

	if msg, ok := obj["msg"].(string); ok {
		env.Msg = msg
	} else if msg, ok := obj["message"].(string); ok {
		env.Msg = msg
	}
	return env
}
