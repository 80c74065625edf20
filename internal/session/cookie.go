package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/batch26/keepsake/internal/model"
)

// CookieStore keeps the identity in a signed JWT cookie named Key.
type CookieStore struct {
	secret []byte
	expiry time.Duration
	secure bool
}

func NewCookieStore(secret string, expiry time.Duration, secure bool) *CookieStore {
	return &CookieStore{
		secret: []byte(secret),
		expiry: expiry,
		secure: secure,
	}
}

func (s *CookieStore) Slot(w http.ResponseWriter, r *http.Request) Slot {
	return &cookieSlot{store: s, w: w, r: r}
}

type userClaims struct {
	User model.User `json:"user"`
	jwt.RegisteredClaims
}

func (s *CookieStore) sign(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)
	claims := userClaims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *CookieStore) verify(tokenString string) (*model.User, error) {
	var claims userClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.User.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return &claims.User, nil
}

func (s *CookieStore) setCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     Key,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type cookieSlot struct {
	store *CookieStore
	w     http.ResponseWriter
	r     *http.Request

	// written reflects a Save or Clear made earlier in this request.
	written bool
	user    *model.User
}

func (c *cookieSlot) Load(ctx context.Context) (*model.User, error) {
	if c.written {
		return clone(c.user), nil
	}

	cookie, err := c.r.Cookie(Key)
	if err != nil {
		return nil, nil
	}

	user, err := c.store.verify(cookie.Value)
	if err != nil {
		// Expired or tampered: drop it so the browser stops sending it.
		c.store.setCookie(c.w, "", time.Unix(0, 0))
		return nil, nil
	}
	return user, nil
}

func (c *cookieSlot) Save(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	token, expiresAt, err := c.store.sign(user)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	c.store.setCookie(c.w, token, expiresAt)

	c.written = true
	c.user = clone(user)
	return nil
}

func (c *cookieSlot) Clear(ctx context.Context) error {
	c.store.setCookie(c.w, "", time.Unix(0, 0))
	c.written = true
	c.user = nil
	return nil
}
