package resolvex

import (
	"encoding/json"
	"slices"
	"time"
)

// Record mirrors one entry of the /api list.
type Record struct {
	Domain string     `json:"domain"`
	Record []string   `json:"record"`
	Expire *time.Time `json:"expire"`
}

// ValueCount returns the number of values; absent values count as zero.
func (r Record) ValueCount() int {
	return len(r.Record)
}

// HasExpire reports whether the record carries a usable expiry. The server
// encodes "never resolved" as the zero time.
func (r Record) HasExpire() bool {
	return r.Expire != nil && !r.Expire.IsZero()
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := Record{Domain: r.Domain}
	if r.Record != nil {
		out.Record = slices.Clone(r.Record)
	}
	if r.Expire != nil {
		exp := *r.Expire
		out.Expire = &exp
	}
	return out
}

// ListResponse mirrors GET /api. List is nil only when the payload carries
// no "list" key; "list": null decodes to an empty list.
type ListResponse struct {
	List []Record `json:"list"`
}

// HasList reports whether the payload contained a record collection.
func (l ListResponse) HasList() bool {
	return l.List != nil
}

// UnmarshalJSON keeps an explicit empty list distinct from a missing one.
func (l *ListResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		List json.RawMessage `json:"list"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case len(raw.List) == 0:
		l.List = nil
		return nil
	case string(raw.List) == "null":
		// The server encodes an empty store as a null list.
		l.List = []Record{}
		return nil
	}
	var list []Record
	if err := json.Unmarshal(raw.List, &list); err != nil {
		return err
	}
	if list == nil {
		list = []Record{}
	}
	l.List = list
	return nil
}

// DomainRequest is the body of POST /api and PUT /api/{domain}/.
type DomainRequest struct {
	Domain string `json:"domain"`
}
