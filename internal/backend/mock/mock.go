// Package mock synthesizes canned lookup payloads that echo the caller's
// identifiers, so an agent can rehearse the parameter contracts and response
// shapes without a live backend. Generation is pure and deterministic per
// input; no state survives a call.
package mock

import (
	"context"
	"fmt"
	"strconv"
)

// Fixed placeholder identity used when the caller does not provide one.
const (
	DemoPersonID  = "P202511300001"
	DemoPhone     = "+96890001122"
	DemoName      = "Demo Person"
	DemoAvatarURL = "https://example.com/avatar/demo_person.png"
	DemoCountry   = "OM"
	DemoGender    = "M"
	DemoEmail     = "demo.person@example.com"

	mockSource = "MOCK_DATA"
)

// Generator is a lookup.Backend that serves the canned dataset.
type Generator struct{}

// NewGenerator returns the mock backend.
func NewGenerator() *Generator { return &Generator{} }

// Fetch synthesizes the payload for a catalog path.
func (g *Generator) Fetch(ctx context.Context, path string, params map[string]string) (interface{}, error) {
	switch path {
	case "/ai/baseinfo":
		return g.baseinfo(params), nil
	case "/ai/family":
		return g.family(params), nil
	case "/ai/cr":
		return g.companyRegistration(params), nil
	case "/ai/contact":
		return g.contacts(params), nil
	case "/ai/car":
		return g.vehicles(params), nil
	case "/ai/social":
		return g.socialAccounts(params), nil
	case "/ai/location":
		return g.locations(params), nil
	case "/ai/voip":
		return g.voipRecords(params), nil
	case "/ai/sms":
		return g.smsRecords(params), nil
	case "/ai/email":
		return g.emailRecords(params), nil
	case "/ai/call":
		return g.callDetail(params), nil
	case "/ai/cdr":
		return g.cdr(params), nil
	case "/ai/db":
		return g.dbRecord(params), nil
	case "/ai/trail":
		return g.locationTrail(params), nil
	}
	return nil, fmt.Errorf("no mock dataset for %s", path)
}

// pick returns the provided parameter or the placeholder.
func pick(params map[string]string, key, fallback string) string {
	if v := params[key]; v != "" {
		return v
	}
	return fallback
}

func pickInt(params map[string]string, key string, fallback int) int {
	if v := params[key]; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func (g *Generator) baseinfo(params map[string]string) interface{} {
	return map[string]interface{}{
		"id":         pick(params, "id", DemoPersonID),
		"phonenum":   pick(params, "phonenum", DemoPhone),
		"name":       DemoName,
		"avatar_url": DemoAvatarURL,
		"country":    DemoCountry,
		"gender":     DemoGender,
		"query_id":   "mock-baseinfo-001",
	}
}

func (g *Generator) family(params map[string]string) interface{} {
	return map[string]interface{}{
		"owner": pick(params, "id", DemoPersonID),
		"members": []interface{}{
			map[string]interface{}{
				"relation": "spouse",
				"name":     "Demo Spouse",
				"id":       "P202511300002",
				"phonenum": "+96890006677",
			},
			map[string]interface{}{
				"relation": "child",
				"name":     "Demo Child",
				"id":       "P202511300003",
				"phonenum": "+96890008899",
			},
		},
		"query_id": "mock-family-001",
	}
}

func (g *Generator) companyRegistration(params map[string]string) interface{} {
	return map[string]interface{}{
		"id":             pick(params, "id", DemoPersonID),
		"reg_no":         "CR-2025-000001",
		"name":           "OneCloudTech Demo LLC",
		"status":         "Active",
		"legal_person":   "Demo Owner",
		"address":        "Muscat, Oman",
		"industry":       "Information Technology Services",
		"establish_date": "2023-01-01",
		"query_id":       "mock-cr-001",
	}
}

func (g *Generator) contacts(params map[string]string) interface{} {
	owner := pick(params, "phonenum", pick(params, "id", DemoPhone))
	return map[string]interface{}{
		"owner": owner,
		"items": []interface{}{
			map[string]interface{}{"contact_type": "phone", "contact": "+96890003344", "times": 128},
			map[string]interface{}{"contact_type": "phone", "contact": "+96890005566", "times": 34},
			map[string]interface{}{"contact_type": "email", "contact": "friend@example.com", "times": 12},
		},
		"query_id": "mock-contact-001",
	}
}

func (g *Generator) vehicles(params map[string]string) interface{} {
	return map[string]interface{}{
		"owner": pick(params, "id", DemoPersonID),
		"items": []interface{}{
			map[string]interface{}{
				"plate":         "A 12345",
				"brand":         "Demo Motors",
				"model":         "Demo Sedan",
				"color":         "White",
				"register_date": "2022-05-10",
			},
		},
		"query_id": "mock-car-001",
	}
}

func (g *Generator) socialAccounts(params map[string]string) interface{} {
	owner := pick(params, "phonenum", pick(params, "id", DemoPhone))
	phone := pick(params, "phonenum", DemoPhone)
	return map[string]interface{}{
		"owner": owner,
		"items": []interface{}{
			map[string]interface{}{
				"dataid":   "128901_" + owner,
				"protocol": "128901",
				"account":  "demo_user@m.facebook.com",
				"phone":    phone,
				"nickname": "Demo Email",
				"platform": "Email",
			},
			map[string]interface{}{
				"dataid":   "147301_" + phone,
				"protocol": "147301",
				"account":  "demo_facebook_user",
				"phone":    phone,
				"nickname": "Demo FB",
				"platform": "Facebook",
			},
		},
		"query_id": "mock-social-001",
	}
}

func (g *Generator) locations(params map[string]string) interface{} {
	return map[string]interface{}{
		"owner": pick(params, "id", pick(params, "phonenum", DemoPersonID)),
		"items": []interface{}{
			map[string]interface{}{
				"type":      "home",
				"address":   "Demo Street 12, Muscat",
				"last_seen": "2025-11-28 21:00:00",
			},
			map[string]interface{}{
				"type":      "work",
				"address":   "Demo Tower 3, Muscat",
				"last_seen": "2025-11-30 08:45:00",
			},
		},
		"query_id": "mock-location-001",
	}
}

func (g *Generator) voipRecords(params map[string]string) interface{} {
	phone := pick(params, "phonenum", DemoPhone)
	payload := map[string]interface{}{
		"phonenum": phone,
		"items": []interface{}{
			map[string]interface{}{
				"call_id":      "VOIP-20251130-0001",
				"from":         phone,
				"to":           "+96890002233",
				"start_time":   "2025-11-30 10:30:00",
				"duration_sec": 180,
				"direction":    "outgoing",
			},
			map[string]interface{}{
				"call_id":      "VOIP-20251130-0002",
				"from":         "+96890002233",
				"to":           phone,
				"start_time":   "2025-11-29 21:15:00",
				"duration_sec": 60,
				"direction":    "incoming",
			},
		},
		"query_id": "mock-voip-001",
	}
	if kw := params["keyword"]; kw != "" {
		payload["keyword"] = kw
	}
	return payload
}

func (g *Generator) smsRecords(params map[string]string) interface{} {
	phone := pick(params, "phonenum", DemoPhone)
	payload := map[string]interface{}{
		"phonenum": phone,
		"items": []interface{}{
			map[string]interface{}{
				"sms_id":  "SMS-20251130-0001",
				"from":    phone,
				"to":      "+96890003344",
				"time":    "2025-11-30 09:00:00",
				"content": "Demo SMS content 1.",
			},
			map[string]interface{}{
				"sms_id":  "SMS-20251129-0002",
				"from":    "+96890005566",
				"to":      phone,
				"time":    "2025-11-29 18:20:00",
				"content": "Demo SMS content 2.",
			},
		},
		"query_id": "mock-sms-001",
	}
	if kw := params["keyword"]; kw != "" {
		payload["keyword"] = kw
	}
	return payload
}

func (g *Generator) emailRecords(params map[string]string) interface{} {
	email := pick(params, "email", DemoEmail)
	payload := map[string]interface{}{
		"email": email,
		"items": []interface{}{
			map[string]interface{}{
				"message_id": "MAIL-20251130-0001",
				"from":       email,
				"to":         []interface{}{"friend1@example.com"},
				"subject":    "Demo email subject 1",
				"time":       "2025-11-30 08:30:00",
			},
			map[string]interface{}{
				"message_id": "MAIL-20251129-0002",
				"from":       "other@example.com",
				"to":         []interface{}{email},
				"subject":    "Demo email subject 2",
				"time":       "2025-11-29 16:10:00",
			},
		},
		"query_id": "mock-email-001",
	}
	if kw := params["keyword"]; kw != "" {
		payload["keyword"] = kw
	}
	return payload
}

func (g *Generator) callDetail(params map[string]string) interface{} {
	basePhone := pick(params, "phone", pick(params, "caller", pick(params, "callee", "10086")))
	return []interface{}{
		map[string]interface{}{
			"callId":          "MOCK_CALL_001",
			"caller":          pick(params, "caller", basePhone),
			"callee":          pick(params, "callee", "13900000001"),
			"startTime":       pick(params, "start_time", "2024-10-01 10:00:00"),
			"endTime":         "2024-10-01 10:05:30",
			"durationSeconds": 330,
			"direction":       "outgoing",
			"result":          "answered",
			"source":          mockSource,
		},
		map[string]interface{}{
			"callId":          "MOCK_CALL_002",
			"caller":          pick(params, "caller", "13900000002"),
			"callee":          pick(params, "callee", basePhone),
			"startTime":       pick(params, "start_time", "2024-10-01 11:20:00"),
			"endTime":         "2024-10-01 11:21:10",
			"durationSeconds": 70,
			"direction":       "incoming",
			"result":          "missed",
			"source":          mockSource,
		},
	}
}

func (g *Generator) cdr(params map[string]string) interface{} {
	phone := pick(params, "phone", DemoPhone)
	records := []interface{}{
		map[string]interface{}{
			"cdrId":           "MOCK_CDR_001",
			"phone":           phone,
			"otherParty":      "13900000001",
			"startTime":       pick(params, "start_time", "2024-10-01 08:00:00"),
			"durationSeconds": 120,
			"direction":       "outgoing",
			"result":          "answered",
			"source":          mockSource,
		},
		map[string]interface{}{
			"cdrId":           "MOCK_CDR_002",
			"phone":           phone,
			"otherParty":      "13900000002",
			"startTime":       "2024-10-01 09:15:00",
			"durationSeconds": 0,
			"direction":       "incoming",
			"result":          "missed",
			"source":          mockSource,
		},
	}
	return map[string]interface{}{
		"records":  records,
		"total":    2,
		"page":     pickInt(params, "page", 1),
		"pageSize": pickInt(params, "page_size", 100),
	}
}

func (g *Generator) dbRecord(params map[string]string) interface{} {
	return map[string]interface{}{
		"idNumber":  pick(params, "id_number", "MOCK_ID_0001"),
		"idType":    pick(params, "id_type", "id_card"),
		"dbType":    pick(params, "db_type", "general"),
		"riskLevel": "low",
		"tags":      []interface{}{"mock", "demo"},
		"remark":    "This is a mock base DB record for demo purpose.",
		"source":    mockSource,
	}
}

func (g *Generator) locationTrail(params map[string]string) interface{} {
	target := pick(params, "phone", pick(params, "device_id", "MOCK_TARGET"))
	return []interface{}{
		map[string]interface{}{
			"target":  target,
			"time":    pick(params, "start_time", "2024-10-01 09:00:00"),
			"lat":     23.123456,
			"lon":     113.123456,
			"address": "Mock City - Location A",
			"source":  mockSource,
		},
		map[string]interface{}{
			"target":  target,
			"time":    "2024-10-01 10:30:00",
			"lat":     23.223456,
			"lon":     113.223456,
			"address": "Mock City - Location B",
			"source":  mockSource,
		},
		map[string]interface{}{
			"target":  target,
			"time":    pick(params, "end_time", "2024-10-01 12:00:00"),
			"lat":     23.323456,
			"lon":     113.323456,
			"address": "Mock City - Location C",
			"source":  mockSource,
		},
	}
}
