package lookup

import "testing"

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		tagged  bool
		code    int
		msg     string
		success bool
	}{
		{"wire success", `{"code":200,"msg":"success","data":{"x":1}}`, true, 200, "success", true},
		{"legacy mock success", `{"code":0,"data":[1,2]}`, true, 0, "", true},
		{"business failure", `{"code":500,"msg":"boom"}`, true, 500, "boom", false},
		{"message key variant", `{"code":500,"message":"nope"}`, true, 500, "nope", false},
		{"non-numeric code is a failure", `{"code":"oops","msg":"bad"}`, true, -1, "bad", false},
		{"plain object passthrough", `{"name":"X"}`, false, 0, "", false},
		{"array passthrough", `[1,2,3]`, false, 0, "", false},
		{"scalar passthrough", `"hello"`, false, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.body))
			if err != nil {
				t.Fatalf("DecodeEnvelope() error = %v", err)
			}
			if env.Tagged != tt.tagged {
				t.Errorf("Tagged = %v, want %v", env.Tagged, tt.tagged)
			}
			if !tt.tagged {
				if env.Raw == nil {
					t.Error("Raw = nil for passthrough body")
				}
				return
			}
			if env.Code != tt.code {
				t.Errorf("Code = %d, want %d", env.Code, tt.code)
			}
			if env.Msg != tt.msg {
				t.Errorf("Msg = %q, want %q", env.Msg, tt.msg)
			}
			if env.Success() != tt.success {
				t.Errorf("Success() = %v, want %v", env.Success(), tt.success)
			}
		})
	}
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("not json at all")); err == nil {
		t.Error("DecodeEnvelope() error = nil, want parse error")
	}
}

func TestDecodeEnvelopeDataShapes(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"code":200,"data":{"name":"X"}}`))
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data type = %T, want map", env.Data)
	}
	if data["name"] != "X" {
		t.Errorf(`data["name"] = %v, want "X"`, data["name"])
	}

	env, err = DecodeEnvelope([]byte(`{"code":200}`))
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	if env.Data != nil {
		t.Errorf("Data = %v, want nil when absent", env.Data)
	}
}
