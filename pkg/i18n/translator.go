package i18n

import (
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/lukas4311/WpfValidation/pkg/logger"
)

// DefaultLanguage is used when no other language matches.
const DefaultLanguage = "en"

// Translator renders messages from loaded catalogs. It is safe for concurrent use.
type Translator struct {
	mu          sync.RWMutex
	messages    Messages
	tags        []language.Tag
	codes       []string
	matcher     language.Matcher
	defaultLang string
	logMissing  bool
	logger      *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when a requested one has no match.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithMissingLog logs a warning through l whenever a key is missing.
func WithMissingLog(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
			t.logMissing = true
		}
	}
}

// NewTranslator creates a translator over messages. Every language code must
// be a valid BCP 47 tag.
func NewTranslator(messages Messages, opts ...Option) (*Translator, error) {
	t := &Translator{
		messages:    Messages{},
		defaultLang: DefaultLanguage,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.Add(messages); err != nil {
		return nil, err
	}
	return t, nil
}

// Add merges messages into the translator. Existing keys are overwritten.
func (t *Translator) Add(messages Messages) error {
	for lang := range messages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidLanguageTag, lang, err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for lang, msgs := range messages {
		if t.messages[lang] == nil {
			t.messages[lang] = make(map[string]string, len(msgs))
		}
		maps.Copy(t.messages[lang], msgs)
	}
	t.rebuildMatcher()
	return nil
}

// LoadFile parses path and merges its messages.
func (t *Translator) LoadFile(path string) error {
	msgs, err := ParseFile(path)
	if err != nil {
		return err
	}
	return t.Add(msgs)
}

func (t *Translator) rebuildMatcher() {
	t.codes = slices.Sorted(maps.Keys(t.messages))
	// The default language goes first: the matcher falls back to the first tag.
	if i := slices.Index(t.codes, t.defaultLang); i > 0 {
		t.codes = append([]string{t.defaultLang}, slices.Delete(t.codes, i, i+1)...)
	}
	t.tags = make([]language.Tag, len(t.codes))
	for i, c := range t.codes {
		t.tags[i] = language.MustParse(c)
	}
	t.matcher = language.NewMatcher(t.tags)
}

// Languages returns the loaded language codes, default language first.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.codes)
}

// Match returns the loaded language closest to the requested ones, which may
// be language tags or an Accept-Language header value.
func (t *Translator) Match(requested ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.match(requested...)
}

func (t *Translator) match(requested ...string) string {
	if len(t.codes) == 0 {
		return t.defaultLang
	}
	for _, r := range requested {
		if _, ok := t.messages[r]; ok {
			return r
		}
	}

	var wanted []language.Tag
	for _, r := range requested {
		tags, _, err := language.ParseAcceptLanguage(r)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	_, index, conf := t.matcher.Match(wanted...)
	if conf == language.No {
		return t.codes[0]
	}
	return t.codes[index]
}

// Has reports whether lang, after matching, has a message for key.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.messages[t.match(lang)][key]
	return ok
}

// T renders key in lang, returning key itself when the message is missing.
func (t *Translator) T(lang, key string, args ...string) string {
	return t.Td(lang, key, key, args...)
}

// Td renders key in lang, falling back to defaultValue when the message is
// missing. Placeholders in either are replaced from args.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	matched := t.match(lang)
	tmpl, ok := t.messages[matched][key]
	t.mu.RUnlock()

	if !ok {
		if t.logMissing {
			t.logger.Warn("message not found", logger.Language(matched), slog.String("key", key))
		}
		tmpl = defaultValue
	}
	return substitute(tmpl, args)
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders from key, value pairs. Unknown
// placeholders are kept and an odd trailing argument is ignored.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
