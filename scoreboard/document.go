package scoreboard

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"sort"
)

// Document field names
const (
	messageIDField = "messageId"
	channelIDField = "channelId"
)

// legacyTeamKeys maps team keys used by earlier versions of the document to their canonical team
var legacyTeamKeys = map[string]Team{
	"teamA": NyanCat,
	"teamB": Bocchi,
}

// document is the decoded form of the persisted state
type document struct {
	scores Scores
	ref    *MessageRef
}

// decodeDocument parses the persisted json object. Legacy team keys are migrated to their
// canonical team (a canonical value wins when both are present). migrated is true when any legacy
// key was found, meaning the document should be written back
func decodeDocument(data []byte) (doc document, migrated bool, err error) {
	raw := make(map[string]json.RawMessage)
	if err = json.Unmarshal(data, &raw); err != nil {
		return document{}, false, errors.Wrap(err, "invalid scoreboard document")
	}

	doc.scores = make(Scores, len(Teams))
	for _, t := range Teams {
		doc.scores[t] = 0
	}

	for _, t := range Teams {
		if v, ok := raw[string(t)]; ok {
			if doc.scores[t], err = decodeScore(string(t), v); err != nil {
				return document{}, false, err
			}
		}
	}

	for legacyKey, t := range legacyTeamKeys {
		v, ok := raw[legacyKey]
		if !ok {
			continue
		}

		migrated = true
		if _, hasCanonical := raw[string(t)]; hasCanonical {
			continue
		}

		if doc.scores[t], err = decodeScore(legacyKey, v); err != nil {
			return document{}, false, err
		}
	}

	var ts, channelID string
	if v, ok := raw[messageIDField]; ok {
		if err = json.Unmarshal(v, &ts); err != nil {
			return document{}, false, errors.Wrapf(err, "invalid [%s] value", messageIDField)
		}
	}

	if v, ok := raw[channelIDField]; ok {
		if err = json.Unmarshal(v, &channelID); err != nil {
			return document{}, false, errors.Wrapf(err, "invalid [%s] value", channelIDField)
		}
	}

	if ts != "" {
		doc.ref = &MessageRef{ChannelID: channelID, Timestamp: ts}
	}

	return doc, migrated, nil
}

func decodeScore(key string, v json.RawMessage) (score int, err error) {
	if err = json.Unmarshal(v, &score); err != nil {
		return 0, errors.Wrapf(err, "invalid score for [%s]", key)
	}

	if score < 0 {
		score = 0
	}

	return score, nil
}

// encode serializes the document as a two-space indented json object with stable key order
func (doc document) encode() (data []byte, err error) {
	fields := make(map[string]interface{}, len(doc.scores)+2)
	for t, v := range doc.scores {
		fields[string(t)] = v
	}

	if doc.ref != nil {
		fields[messageIDField] = doc.ref.Timestamp
		if doc.ref.ChannelID != "" {
			fields[channelIDField] = doc.ref.ChannelID
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fieldRank(keys[i]) < fieldRank(keys[j]) })

	var b bytes.Buffer
	b.WriteString("{\n")
	for i, k := range keys {
		name, _ := json.Marshal(k)
		value, err := json.Marshal(fields[k])
		if err != nil {
			return nil, err
		}

		b.WriteString("  ")
		b.Write(name)
		b.WriteString(": ")
		b.Write(value)
		if i < len(keys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")

	return b.Bytes(), nil
}

// fieldRank orders teams first (in display order) followed by the message reference fields
func fieldRank(key string) int {
	for i, t := range Teams {
		if key == string(t) {
			return i
		}
	}

	switch key {
	case messageIDField:
		return len(Teams)
	case channelIDField:
		return len(Teams) + 1
	}

	return len(Teams) + 2
}

// clone returns a deep copy of the document
func (doc document) clone() (c document) {
	c.scores = make(Scores, len(doc.scores))
	for t, v := range doc.scores {
		c.scores[t] = v
	}

	if doc.ref != nil {
		ref := *doc.ref
		c.ref = &ref
	}

	return c
}
