package models

// IDField is the key under which a document's opaque identifier is exposed
const IDField = "_id"

// OwnerField designates the identity that owns a document
const OwnerField = "email"

// Document is a flat key-value record held by a resource store
type Document map[string]any

// ID returns the document identifier, or an empty string when unset
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Owner returns the identity stored in the owner field
func (d Document) Owner() string {
	owner, _ := d[OwnerField].(string)
	return owner
}

// Clone returns a shallow copy of the document
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// WithoutID returns a copy of the document without the identifier key.
// Stores assign identifiers themselves, so callers never persist a client-supplied _id.
func (d Document) WithoutID() Document {
	out := d.Clone()
	delete(out, IDField)
	return out
}
