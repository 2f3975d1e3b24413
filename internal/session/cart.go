package session

import (
	"encoding/gob"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/sessions"
)

// Cart lives in the cookie session, keyed by product ID as a string.
// Values are quantities.
type Cart map[string]int64

func init() {
	// securecookie gob-encodes session values
	gob.Register(Cart{})
}

// Add merges qty into the entry for productID.
func (c Cart) Add(productID int64, qty int64) {
	key := strconv.FormatInt(productID, 10)
	c[key] += qty
}

// Remove drops the entry entirely, whatever its quantity.
func (c Cart) Remove(productID int64) {
	delete(c, strconv.FormatInt(productID, 10))
}

// Count is the total quantity across all entries.
func (c Cart) Count() int64 {
	var n int64
	for _, qty := range c {
		n += qty
	}
	return n
}

// Entry is a parsed cart line.
type Entry struct {
	ProductID int64
	Qty       int64
}

// Entries returns the cart sorted by product ID. Keys that do not parse as
// IDs are skipped rather than failing the whole cart.
func (c Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c))
	for key, qty := range c {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || qty <= 0 {
			continue
		}
		entries = append(entries, Entry{ProductID: id, Qty: qty})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ProductID < entries[j].ProductID })
	return entries
}

const (
	sessionName = "balaji_session"
	cartKey     = "cart"
)

// CartStore reads and writes the cart in the signed cookie session.
type CartStore struct {
	store *sessions.CookieStore
}

func NewCartStore(secret string, secure bool) *CartStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CartStore{store: store}
}

// Load returns the current cart, or an empty one when the session carries
// none (or carries garbage).
func (s *CartStore) Load(r *http.Request) Cart {
	sess, _ := s.store.Get(r, sessionName)
	if raw, ok := sess.Values[cartKey]; ok {
		if cart, ok := raw.(Cart); ok {
			return cart
		}
	}
	return Cart{}
}

func (s *CartStore) Save(r *http.Request, w http.ResponseWriter, cart Cart) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[cartKey] = cart
	return sess.Save(r, w)
}

// Clear drops the cart from the session.
func (s *CartStore) Clear(r *http.Request, w http.ResponseWriter) error {
	sess, _ := s.store.Get(r, sessionName)
	delete(sess.Values, cartKey)
	return sess.Save(r, w)
}
