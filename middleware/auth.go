package middleware

import (
	"log"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/deemkeen/letterdesk/util"
)

// AuthMiddleware only lets configured keys through. With no authorized keys
// configured every key is accepted.
func AuthMiddleware(conf *util.AppConfig) wish.Middleware {
	allowed := util.ParseAuthorizedKeys(conf.Conf.AuthorizedKeys)
	if len(allowed) == 0 {
		log.Println("No authorized keys configured, accepting every public key")
	}

	return func(h ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			util.LogPublicKey(s)

			if !util.KeyAllowed(allowed, s.PublicKey()) {
				log.Printf("Rejected key for %s@%s", s.User(), s.RemoteAddr())
				wish.Fatalln(s, "이 키로는 편지함에 들어갈 수 없어요.")
				return
			}
			h(s)
		}
	}
}
