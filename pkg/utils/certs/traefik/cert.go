// Package traefik reads certificates from the acme.json store of traefik
package traefik

import (
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

var ErrDomainNotFound = errors.New("domain not found")

type acmeEntry struct {
	Certificate string `json:"certificate"`
	Key         string `json:"key"`
}

// LoadCertificate reads the certificate of domain from a traefik acme file
func LoadCertificate(file, domain string) (tls.Certificate, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return tls.Certificate{}, err
	}
	return ParseCertificate(string(data), domain)
}

func ParseCertificate(jsonData, domain string) (tls.Certificate, error) {
	entry, err := findEntry(jsonData, domain)
	if err != nil {
		return tls.Certificate{}, err
	}
	certPEM, err := base64.StdEncoding.DecodeString(entry.Certificate)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("certificate: %w", err)
	}
	keyPEM, err := base64.StdEncoding.DecodeString(entry.Key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("key: %w", err)
	}
	return tls.X509KeyPair(certPEM, keyPEM)
}

// Domains lists the main domains of all certificates in the store
func Domains(jsonData string) ([]string, error) {
	obj, err := oj.ParseString(jsonData)
	if err != nil {
		return nil, err
	}
	ret := []string{}
	for _, v := range jp.MustParseString(`$..Certificates[*].domain.main`).Get(obj) {
		if s, ok := v.(string); ok {
			ret = append(ret, s)
		}
	}
	return ret, nil
}

func findEntry(jsonData, domain string) (*acmeEntry, error) {
	obj, err := oj.ParseString(jsonData)
	if err != nil {
		return nil, err
	}
	path, err := jp.ParseString(fmt.Sprintf(`$..Certificates[?(@.domain.main == %q)]`, domain))
	if err != nil {
		return nil, err
	}
	res := path.Get(obj)
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDomainNotFound, domain)
	}
	ret := acmeEntry{}
	if err := oj.Unmarshal([]byte(oj.JSON(res[0])), &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}
