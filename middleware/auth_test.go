package middleware

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/testsession"
	"github.com/deemkeen/letterdesk/util"
	gossh "golang.org/x/crypto/ssh"
)

func newSigner(t *testing.T) gossh.Signer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	return signer
}

func runSession(t *testing.T, conf *util.AppConfig, signer gossh.Signer) (string, error) {
	t.Helper()
	srv := &ssh.Server{
		Handler: AuthMiddleware(conf)(func(s ssh.Session) {
			wish.Println(s, "welcome")
		}),
		PublicKeyHandler: func(ssh.Context, ssh.PublicKey) bool { return true },
	}
	sess := testsession.New(t, srv, &gossh.ClientConfig{
		User:            "tester",
		Auth:            []gossh.AuthMethod{gossh.PublicKeys(signer)},
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
	})
	out, err := sess.CombinedOutput("")
	return string(out), err
}

func TestAuthMiddleware_AllowsEveryKeyWithoutList(t *testing.T) {
	conf := &util.AppConfig{}
	out, err := runSession(t, conf, newSigner(t))
	if err != nil {
		t.Fatalf("Expected session to succeed, got %v", err)
	}
	if !strings.Contains(out, "welcome") {
		t.Errorf("Expected handler output, got %q", out)
	}
}

func TestAuthMiddleware_AllowsListedKey(t *testing.T) {
	signer := newSigner(t)
	conf := &util.AppConfig{}
	conf.Conf.AuthorizedKeys = []string{string(gossh.MarshalAuthorizedKey(signer.PublicKey()))}

	out, err := runSession(t, conf, signer)
	if err != nil {
		t.Fatalf("Expected session to succeed, got %v", err)
	}
	if !strings.Contains(out, "welcome") {
		t.Errorf("Expected handler output, got %q", out)
	}
}

func TestAuthMiddleware_RejectsUnlistedKey(t *testing.T) {
	conf := &util.AppConfig{}
	conf.Conf.AuthorizedKeys = []string{string(gossh.MarshalAuthorizedKey(newSigner(t).PublicKey()))}

	out, err := runSession(t, conf, newSigner(t))
	if err == nil {
		t.Fatal("Expected session to fail for an unlisted key")
	}
	if strings.Contains(out, "welcome") {
		t.Errorf("Handler must not run for an unlisted key, got %q", out)
	}
}
