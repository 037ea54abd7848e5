package util

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"
)

//go:embed version.txt
var embeddedVersion string

const Name = "letterdesk"

func LogPublicKey(s ssh.Session) {
	log.Printf("%s@%s opened a new ssh-session (key %s)", s.User(), s.RemoteAddr(), PkToHash(PublicKeyToString(s.PublicKey()))[:12])
}

func PublicKeyToString(s ssh.PublicKey) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(string(gossh.MarshalAuthorizedKey(s)))
}

func PkToHash(pk string) string {
	h := sha256.New()
	h.Write([]byte(pk))
	return hex.EncodeToString(h.Sum(nil))
}

// ParseAuthorizedKeys parses authorized_keys style lines. Blank lines and
// comments are skipped; malformed lines are logged and dropped.
func ParseAuthorizedKeys(lines []string) []ssh.PublicKey {
	keys := make([]ssh.PublicKey, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, _, _, err := gossh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			log.Printf("Ignoring malformed authorized key %q: %v", line, err)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// KeyAllowed reports whether key is in allowed. An empty list allows every key.
func KeyAllowed(allowed []ssh.PublicKey, key ssh.PublicKey) bool {
	if len(allowed) == 0 {
		return true
	}
	if key == nil {
		return false
	}
	for _, k := range allowed {
		if ssh.KeysEqual(k, key) {
			return true
		}
	}
	return false
}

func GetVersion() string {
	return strings.TrimSpace(embeddedVersion)
}

func GetNameAndVersion() string {
	return fmt.Sprintf("%s / %s", Name, GetVersion())
}

func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", " ")
	return string(s)
}

// ResolveFilePath returns name in the working directory if it exists there,
// otherwise the path inside the user config directory.
func ResolveFilePath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	confDir := filepath.Join(dir, Name)
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		log.Printf("Failed to create config dir %s: %v", confDir, err)
		return name
	}
	return filepath.Join(confDir, name)
}

func ResolveFilePathWithSubdir(subdir, name string) string {
	local := filepath.Join(subdir, name)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return local
	}
	target := filepath.Join(dir, Name, subdir)
	if err := os.MkdirAll(target, 0o700); err != nil {
		log.Printf("Failed to create %s: %v", target, err)
		return local
	}
	return filepath.Join(target, name)
}
