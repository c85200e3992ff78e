package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// document is the on-disk layout of the file backends.
type document struct {
	Users map[string]*UserProfile `json:"users"`
}

func newDocument() *document {
	return &document{Users: map[string]*UserProfile{}}
}

const documentSchema = `{
  "type": "object",
  "properties": {
    "users": {
      "type": ["object", "null"],
      "additionalProperties": { "$ref": "#/$defs/profile" }
    }
  },
  "$defs": {
    "profile": {
      "type": "object",
      "properties": {
        "username": { "type": "string" },
        "grade": { "type": "string" },
        "history": {
          "type": ["array", "null"],
          "items": { "$ref": "#/$defs/turn" }
        },
        "quizzesTaken": { "type": "integer", "minimum": 0 }
      }
    },
    "turn": {
      "type": "object",
      "required": ["text", "time"],
      "properties": {
        "sender": { "type": "string", "enum": ["user", "ai"] },
        "text": { "type": "string" },
        "time": { "type": "string" }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("memory.schema.json", documentSchema)

// decodeDocument validates raw against the schema, decodes it and migrates
// legacy records. An empty input is an empty document.
func decodeDocument(raw []byte) (*document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return newDocument(), nil
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	doc := newDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.Users == nil {
		doc.Users = map[string]*UserProfile{}
	}

	for key, p := range doc.Users {
		if p == nil {
			return nil, fmt.Errorf("%w: user %q is null", ErrCorruptDocument, key)
		}
		if err := normalize(key, p); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func encodeDocument(doc *document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// normalize migrates records written by older layouts: the username may be
// missing from the record, history may be absent, and turns may carry no
// sender, in which case senders alternate user/ai by position.
func normalize(key string, p *UserProfile) error {
	switch p.Username {
	case "":
		p.Username = key
	case key:
	default:
		return fmt.Errorf("%w: record %q stored under key %q", ErrCorruptDocument, p.Username, key)
	}

	if p.History == nil {
		p.History = []Turn{}
	}
	for i := range p.History {
		t := &p.History[i]
		if t.Sender == "" {
			if i%2 == 0 {
				t.Sender = SenderUser
			} else {
				t.Sender = SenderAI
			}
		}
		if !t.Sender.IsValid() {
			return fmt.Errorf("%w: user %q turn %d has sender %q", ErrCorruptDocument, key, i, t.Sender)
		}
		t.Time = t.Time.UTC()
	}

	if p.QuizzesTaken < 0 {
		return fmt.Errorf("%w: user %q has negative quiz count", ErrCorruptDocument, key)
	}
	return nil
}
