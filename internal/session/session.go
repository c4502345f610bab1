package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sweetlavka/storefront/internal/cart"
	"github.com/sweetlavka/storefront/internal/checkout"
	"github.com/sweetlavka/storefront/internal/session/config"
	"github.com/sweetlavka/storefront/internal/token"
)

const (
	UserCodeKey        = "userCode"
	cookieSessionToken = "storefrontSessionToken"
)

// Session — состояние одного посетителя: корзина и оформление заказа.
// Обработчики выполняются в разных горутинах, поэтому изменения
// состояния сессии сериализуются мьютексом.
type Session struct {
	sync.Mutex
	Cart     *cart.Cart
	Checkout *checkout.Engine

	lastSeen time.Time // под мьютексом реестра
}

func newSession() *Session {
	c := cart.NewCart()
	return &Session{
		Cart:     c,
		Checkout: checkout.NewEngine(c),
	}
}

// Registry хранит сессии посетителей. Состояние живет в памяти процесса:
// между перезапусками корзины не сохраняются.
//
// Чтобы сканер без cookie не раздувал память, число сессий ограничено:
// сверх предела вытесняется сессия, к которой дольше всего не обращались.
const maxSessions = 10000

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	secret   string
}

func NewRegistry(cfg config.Config) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		secret:   cfg.TokenSecret,
	}
}

// Session возвращает сессию по коду, создавая ее при первом обращении.
func (r *Registry) Session(userCode string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userCode]
	if !ok {
		if len(r.sessions) >= maxSessions {
			r.evictOldest()
		}
		sess = newSession()
		r.sessions[userCode] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

func (r *Registry) evictOldest() {
	var oldestCode string
	var oldest time.Time
	for code, sess := range r.sessions {
		if oldestCode == "" || sess.lastSeen.Before(oldest) {
			oldestCode = code
			oldest = sess.lastSeen
		}
	}
	delete(r.sessions, oldestCode)
}

// Middleware узнает посетителя по cookie. Новому посетителю выдается
// новый код сессии с подписанным токеном. Код прокидывается хендлеру
// через заголовок запроса.
func (r *Registry) Middleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		userCode, err := r.getUserCode(req)
		if err != nil {
			userCode = uuid.NewString()
			tokenString, err := token.BuildJWTString(userCode, r.secret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:  cookieSessionToken,
				Value: tokenString,
				Path:  "/",
			})
		}

		req.Header.Set(UserCodeKey, userCode)

		h.ServeHTTP(w, req)
	}
}

func (r *Registry) getUserCode(req *http.Request) (string, error) {
	tokenCookie, err := req.Cookie(cookieSessionToken)
	if err != nil {
		return "", err
	}
	return token.GetUserCode(tokenCookie.Value, r.secret)
}
