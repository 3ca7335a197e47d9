package posts

import "github.com/scholarsknowledge/server/pkg/structs"

// Attachment is the lightweight descriptor embedded in a post. The Id
// references blob content in the attachment blob store; Thumb is an
// optional inline downscaled preview.
type Attachment struct {
	Id    string `bson:"id" msgpack:"id"`
	Name  string `bson:"name" msgpack:"name"`
	Mime  string `bson:"mime" msgpack:"mime"`
	Thumb []byte `bson:"thumb,omitempty" msgpack:"thumb,omitempty"`
}

// stripThumbs reduces descriptors to their bare form. Used by the degraded
// write path when a post document exceeds the storage size limit.
func stripThumbs(attachments []Attachment) []Attachment {
	stripped := make([]Attachment, len(attachments))
	for i, a := range attachments {
		a.Thumb = nil
		stripped[i] = a
	}
	return stripped
}

func blobIds(attachments []Attachment) []string {
	ids := []string{}
	for _, a := range attachments {
		if a.Id != "" {
			ids = append(ids, a.Id)
		}
	}
	return ids
}

func (a Attachment) V0() structs.V0Attachment {
	return structs.V0Attachment{
		Id:    a.Id,
		Name:  a.Name,
		Mime:  a.Mime,
		Thumb: a.Thumb,
	}
}

func v0Attachments(attachments []Attachment) []structs.V0Attachment {
	v0 := []structs.V0Attachment{}
	for _, a := range attachments {
		v0 = append(v0, a.V0())
	}
	return v0
}
