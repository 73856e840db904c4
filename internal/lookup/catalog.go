package lookup

import "fmt"

// Param describes one named operation parameter. Every parameter travels as
// a string on the wire.
type Param struct {
	Name        string
	Description string
}

// Operation describes one lookup operation: a fixed backend path, the
// accepted parameters, and the rule that must hold before the call is made.
type Operation struct {
	Name        string
	Description string
	Path        string
	Rule        Rule
	Params      []Param
}

// CleanArgs reduces raw arguments to the declared, present parameters as
// strings, the mapping that goes on the wire and is echoed back in wrapped
// results. Unset and blank values are dropped.
func (op *Operation) CleanArgs(args map[string]interface{}) map[string]string {
	cleaned := make(map[string]string)
	for _, p := range op.Params {
		if !argPresent(args, p.Name) {
			continue
		}
		cleaned[p.Name] = argString(args[p.Name])
	}
	return cleaned
}

// Catalog holds registered operations, preserving registration order.
type Catalog struct {
	ops   []*Operation
	index map[string]*Operation
}

// NewCatalog builds a catalog from the given operations. Duplicate names are
// rejected.
func NewCatalog(ops ...*Operation) (*Catalog, error) {
	c := &Catalog{index: make(map[string]*Operation)}
	for _, op := range ops {
		if err := c.Add(op); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers one operation.
func (c *Catalog) Add(op *Operation) error {
	if op.Name == "" {
		return fmt.Errorf("operation has no name")
	}
	if _, exists := c.index[op.Name]; exists {
		return fmt.Errorf("duplicate operation %q", op.Name)
	}
	c.ops = append(c.ops, op)
	c.index[op.Name] = op
	return nil
}

// Get returns the named operation.
func (c *Catalog) Get(name string) (*Operation, bool) {
	op, ok := c.index[name]
	return op, ok
}

// All returns the operations in registration order.
func (c *Catalog) All() []*Operation {
	out := make([]*Operation, len(c.ops))
	copy(out, c.ops)
	return out
}

// Len returns the number of registered operations.
func (c *Catalog) Len() int { return len(c.ops) }

// Shared parameter descriptions. The v1 endpoints use "phonenum"; the older
// record endpoints kept their original "phone" naming.
var (
	paramID       = Param{"id", "National ID number of the person"}
	paramPassport = Param{"passport", "Passport number of the person"}
	paramPhonenum = Param{"phonenum", "Phone number of the person, international format preferred"}
	paramKeyword  = Param{"keyword", "Free-text keyword to search record contents"}
	paramEmail    = Param{"email", "Email address of the person"}
)

// Builtins returns the built-in operation set.
func Builtins() []*Operation {
	return []*Operation{
		{
			Name:        "get_person_baseinfo",
			Description: "Look up a person's basic profile (name, avatar, nationality, gender). Requires at least one of: national id, passport number, or phone number.",
			Path:        "/ai/baseinfo",
			Rule:        Rule{AnyOf, []string{"id", "passport", "phonenum"}},
			Params:      []Param{paramID, paramPassport, paramPhonenum},
		},
		{
			Name:        "get_family_members",
			Description: "List a person's family members and their relationships. Requires national id or phone number.",
			Path:        "/ai/family",
			Rule:        Rule{AnyOf, []string{"id", "phonenum"}},
			Params:      []Param{paramID, paramPhonenum},
		},
		{
			Name:        "get_cr_info",
			Description: "Look up company registration (CR) records tied to a person. Requires at least one of: national id, passport number, or phone number.",
			Path:        "/ai/cr",
			Rule:        Rule{AnyOf, []string{"id", "passport", "phonenum"}},
			Params:      []Param{paramID, paramPassport, paramPhonenum},
		},
		{
			Name:        "get_top_contacts",
			Description: "Rank the phone numbers and emails a person communicates with most, with contact counts. Requires national id or phone number.",
			Path:        "/ai/contact",
			Rule:        Rule{AnyOf, []string{"id", "phonenum"}},
			Params:      []Param{paramID, paramPhonenum},
		},
		{
			Name:        "get_vehicles",
			Description: "List vehicles registered to a person. Requires national id or phone number.",
			Path:        "/ai/car",
			Rule:        Rule{AnyOf, []string{"id", "phonenum"}},
			Params:      []Param{paramID, paramPhonenum},
		},
		{
			Name:        "get_social_accounts",
			Description: "Find social and messaging accounts bound to a person (platform, account, nickname). Requires national id or phone number.",
			Path:        "/ai/social",
			Rule:        Rule{AnyOf, []string{"id", "phonenum"}},
			Params:      []Param{paramID, paramPhonenum},
		},
		{
			Name:        "get_locations",
			Description: "List known addresses and recent locations for a person. Requires national id or phone number.",
			Path:        "/ai/location",
			Rule:        Rule{AnyOf, []string{"id", "phonenum"}},
			Params:      []Param{paramID, paramPhonenum},
		},
		{
			Name:        "search_voip_records",
			Description: "Search VoIP call records by keyword or phone number.",
			Path:        "/ai/voip",
			Rule:        Rule{AnyOf, []string{"keyword", "phonenum"}},
			Params:      []Param{paramKeyword, paramPhonenum},
		},
		{
			Name:        "search_sms_records",
			Description: "Search SMS records by keyword or phone number.",
			Path:        "/ai/sms",
			Rule:        Rule{AnyOf, []string{"keyword", "phonenum"}},
			Params:      []Param{paramKeyword, paramPhonenum},
		},
		{
			Name:        "search_email_records",
			Description: "Search email records by keyword or email address.",
			Path:        "/ai/email",
			Rule:        Rule{AnyOf, []string{"keyword", "email"}},
			Params:      []Param{paramKeyword, paramEmail},
		},
		{
			Name:        "query_call_detail",
			Description: "Query call detail records for a number or a caller/callee pair. Requires at least one of: caller, callee, or phone.",
			Path:        "/ai/call",
			Rule:        Rule{AnyOf, []string{"caller", "callee", "phone"}},
			Params: []Param{
				{"caller", "Calling number (A number)"},
				{"callee", "Called number (B number)"},
				{"phone", "Single number to match on either side of the call"},
				{"start_time", "Start of the time window, e.g. 2024-10-01 00:00:00"},
				{"end_time", "End of the time window"},
				{"limit", "Maximum number of records to return"},
			},
		},
		{
			Name:        "query_cdr",
			Description: "Query paginated CDR (call detail records) for a phone number. The phone number is required.",
			Path:        "/ai/cdr",
			Rule:        Rule{AllOf, []string{"phone"}},
			Params: []Param{
				{"phone", "Phone number to pull CDR records for"},
				{"start_time", "Start of the time window"},
				{"end_time", "End of the time window"},
				{"page", "Page index, starting at 1"},
				{"page_size", "Records per page"},
			},
		},
		{
			Name:        "query_db_record",
			Description: "Query the base database record (risk level, tags) for an identity number. The id_number is required.",
			Path:        "/ai/db",
			Rule:        Rule{AllOf, []string{"id_number"}},
			Params: []Param{
				{"id_number", "Identity number to look up"},
				{"id_type", "Identity type: id_card, passport, or other"},
				{"db_type", "Database category, e.g. blacklist or customer"},
			},
		},
		{
			Name:        "query_location_trail",
			Description: "Query location trajectory points for a phone or device over a time window. Requires phone or device_id.",
			Path:        "/ai/trail",
			Rule:        Rule{AnyOf, []string{"phone", "device_id"}},
			Params: []Param{
				{"phone", "Phone number of the target"},
				{"device_id", "Device identifier of the target"},
				{"start_time", "Start of the time window"},
				{"end_time", "End of the time window"},
				{"limit", "Maximum number of points to return"},
			},
		},
	}
}
