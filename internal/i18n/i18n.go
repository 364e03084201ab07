// Package i18n provides internationalization support for the public site.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// SupportedLanguages lists the site languages we support.
var SupportedLanguages = []string{"ko", "en"}

// New loads the embedded catalogs and returns a ready Catalog.
func New(defaultLang string, logger *slog.Logger) (*Catalog, error) {
	if defaultLang == "" {
		defaultLang = "ko"
	}

	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}
	c.supported = tags
	c.matcher = language.NewMatcher(tags)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("loading language %s: %w", lang, err)
		}
	}

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}

	return c, nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string)
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	return nil
}

// T returns the translation for key in lang, falling back to the default
// language and finally to the key itself.
func (c *Catalog) T(lang, key string, args ...any) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	msg, ok := c.translations[lang][key]
	if !ok {
		msg, ok = c.translations[c.defaultLang][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// DefaultLang returns the catalog's default language code.
func (c *Catalog) DefaultLang() string {
	return c.defaultLang
}

// Match picks the best supported language for an Accept-Language header
// value, falling back to the default language.
func (c *Catalog) Match(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return c.defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.defaultLang
	}
	return SupportedLanguages[idx]
}
