package codec

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"

	"survey-engine/internal/config"
	"survey-engine/internal/models"
	"survey-engine/internal/session"
)

// unansweredMark fills the slot of an unanswered question in the compact
// payload so positions stay aligned with the question list.
const unansweredMark = '-'

// Codec encodes an answer set into a URL fragment and back. It is bound to
// the ordered question list of the active questionnaire: the compact
// payload pairs character i with question i, so both directions must walk
// the same order.
type Codec struct {
	questions   []models.Question
	optionCount int
	mode        string
	sess        *session.Session
}

// New builds a codec for the given questionnaire. The encoding mode comes
// from the config; compact is only used when explicitly configured.
func New(questions []models.Question, cfg *config.Normalized, sess *session.Session) *Codec {
	mode := config.EncodingVerbose
	if cfg != nil && cfg.BookmarkEncoding == config.EncodingCompact {
		mode = config.EncodingCompact
	}
	optionCount := 0
	if cfg != nil {
		optionCount = len(cfg.Answers)
	}
	return &Codec{
		questions:   questions,
		optionCount: optionCount,
		mode:        mode,
		sess:        sess,
	}
}

// Encode serializes the answer set into a fragment (without the leading
// "#") using the configured encoding.
func (c *Codec) Encode(set models.AnswerSet) string {
	if c.mode == config.EncodingCompact {
		return c.encodeCompact(set)
	}
	return c.encodeVerbose(set)
}

// EncodeLive is Encode for the in-page hash during form filling. It
// returns ok=false while the session suppression flag is set.
func (c *Codec) EncodeLive(set models.AnswerSet) (string, bool) {
	if c.sess != nil && c.sess.Suppressed() {
		return "", false
	}
	return c.Encode(set), true
}

// Decode parses a fragment back into an answer set. It accepts both
// encodings regardless of the configured mode, tries compact only when the
// fragment carries the compact parameter, and fails closed: any corrupt
// value rejects the whole decode so a damaged URL can never produce a
// misleading partial score.
func (c *Codec) Decode(fragment string) (models.AnswerSet, bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return nil, false
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return nil, false
	}
	if payload := values.Get("c"); payload != "" {
		return c.decodeCompact(payload)
	}
	return c.decodeVerbose(values)
}

func (c *Codec) encodeVerbose(set models.AnswerSet) string {
	var b strings.Builder
	for _, q := range c.questions {
		idx, ok := set[q.ID]
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(q.ID))
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

func (c *Codec) decodeVerbose(values url.Values) (models.AnswerSet, bool) {
	set := models.AnswerSet{}
	for _, q := range c.questions {
		vals, ok := values[q.ID]
		if !ok || len(vals) == 0 {
			continue
		}
		idx, err := strconv.Atoi(vals[0])
		if err != nil || idx < 0 || !c.validIndex(idx) {
			return nil, false
		}
		set[q.ID] = idx
	}
	if len(set) == 0 {
		return nil, false
	}
	return set, true
}

func (c *Codec) encodeCompact(set models.AnswerSet) string {
	digits := make([]byte, len(c.questions))
	for i, q := range c.questions {
		if idx, ok := set[q.ID]; ok && idx >= 0 && idx <= 9 {
			digits[i] = byte('0' + idx)
		} else {
			digits[i] = unansweredMark
		}
	}
	return "c=" + url.QueryEscape(base64.StdEncoding.EncodeToString(digits))
}

func (c *Codec) decodeCompact(payload string) (models.AnswerSet, bool) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	set := models.AnswerSet{}
	for i, q := range c.questions {
		if i >= len(decoded) {
			break
		}
		ch := decoded[i]
		if ch == unansweredMark {
			continue
		}
		if ch < '0' || ch > '9' {
			return nil, false
		}
		idx := int(ch - '0')
		if !c.validIndex(idx) {
			return nil, false
		}
		set[q.ID] = idx
	}
	if len(set) == 0 {
		return nil, false
	}
	return set, true
}

func (c *Codec) validIndex(idx int) bool {
	return c.optionCount == 0 || idx < c.optionCount
}
