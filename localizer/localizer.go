package localizer

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"time"

	"golang.org/x/text/language"
)

type Localizer map[string]string

// Get returns the message for key, or the key itself when it has no
// translation.
func (loc Localizer) Get(key string) string {
	val, ok := loc[key]
	if !ok {
		return key
	}
	return val
}

type i18n map[string]Localizer

const (
	FallbackLanguage = "en"
	CookieKey        = "language"
	PaginationKey    = "pagination"
	SharedKey        = "shared"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supportedLanguages)

//go:embed locales/*.json
var defaultFiles embed.FS

// Store loads localizations from json files named after their key. Each
// file maps a language to its messages:
//
//	{"en": {"PaginationNextButton": "Next"}, "es": {...}}
type Store struct {
	files     fs.FS
	sharedKey string
}

func NewStore(files fs.FS, sharedKey string) *Store {
	return &Store{files, sharedKey}
}

// Default returns a Store with the bundled pagination messages.
func Default() *Store {
	sub, err := fs.Sub(defaultFiles, "locales")
	if err != nil {
		panic(err)
	}
	return NewStore(sub, SharedKey)
}

func (ls *Store) loadFile(file string) (i18n, error) {
	raw, err := fs.ReadFile(ls.files, file)
	if err != nil {
		return nil, fmt.Errorf("cannot read localization file '%s': %w", file, err)
	}
	var values i18n
	if err = json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("cannot decode localization file '%s': %w", file, err)
	}
	return values, nil
}

func (ls *Store) GetWithoutShared(key, lang string) (Localizer, error) {
	file := path.Clean(fmt.Sprintf("%s.json", key))
	values, err := ls.loadFile(file)
	if err != nil {
		return nil, err
	}
	val, ok := values[lang]
	if !ok {
		val, ok = values[FallbackLanguage]
		if !ok {
			return nil, fmt.Errorf("missing fallback language ('%s') localizations for key '%s'", FallbackLanguage, key)
		}
	}
	return val, nil
}

// Get returns the localizations for key merged with the shared ones.
func (ls *Store) Get(key, lang string) (Localizer, error) {
	loc, err := ls.GetWithoutShared(key, lang)
	if err != nil {
		return nil, err
	}
	if ls.sharedKey == "" || ls.sharedKey == key {
		return loc, nil
	}
	shared, err := ls.GetWithoutShared(ls.sharedKey, lang)
	if err != nil {
		return nil, err
	}
	merged := make(Localizer, len(loc)+len(shared))
	mergeLocalizers(merged, shared)
	mergeLocalizers(merged, loc)
	return merged, nil
}

func mergeLocalizers(dst, origin Localizer) {
	for key, val := range origin {
		dst[key] = val
	}
}

func (ls *Store) GetUsingRequest(key string, req *http.Request) (Localizer, error) {
	return ls.Get(key, Language(req))
}

// Language picks the language of a request: the language cookie first,
// then the Accept-Language header.
func Language(req *http.Request) string {
	if cookie, err := req.Cookie(CookieKey); err == nil {
		if lang, ok := Match(cookie.Value); ok {
			return lang
		}
	}
	if lang, ok := Match(req.Header.Get("Accept-Language")); ok {
		return lang
	}
	return FallbackLanguage
}

// Match negotiates an Accept-Language style value against the supported
// languages and returns the base language to use.
func Match(accept string) (string, bool) {
	if accept == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	base, _ := supportedLanguages[index].Base()
	return base.String(), true
}

func CreateCookie(w http.ResponseWriter, lang string) {
	selected, ok := Match(lang)
	if !ok {
		selected = FallbackLanguage
	}
	age := 24 * time.Hour
	http.SetCookie(w, &http.Cookie{
		Name:     CookieKey,
		Value:    selected,
		Expires:  time.Now().Add(age),
		MaxAge:   int(age.Seconds()),
		Path:     "/",
		SameSite: http.SameSiteDefaultMode,
	})
}
