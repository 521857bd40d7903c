//nolint:lll,funlen // readablity
package traefik

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const acme = `{"myresolver":{"Certificates":[
	{"domain":{"main":"relay.example.com"}, "certificate": "cert1", "key": "key1"},
	{"domain":{"main":"*.example.com"}, "certificate": "cert2", "key": "key2"}]}}`

func TestFindEntry(t *testing.T) {
	tests := []struct {
		name     string
		jsonData string
		domain   string
		want     *acmeEntry
		wantErr  error
	}{
		{name: "Success", jsonData: acme, domain: "relay.example.com", want: &acmeEntry{Certificate: "cert1", Key: "key1"}},
		{name: "Wildcard domain", jsonData: acme, domain: "*.example.com", want: &acmeEntry{Certificate: "cert2", Key: "key2"}},
		{name: "Domain not found", jsonData: acme, domain: "notfound.com", wantErr: ErrDomainNotFound},
		{name: "Empty json", jsonData: `{}`, domain: "notfound.com", wantErr: ErrDomainNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findEntry(tt.jsonData, tt.domain)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDomains(t *testing.T) {
	got, err := Domains(acme)
	assert.NoError(t, err)
	assert.Equal(t, []string{"relay.example.com", "*.example.com"}, got)

	_, err = Domains("not json")
	assert.Error(t, err)
}

func TestParseCertificate_BadBase64(t *testing.T) {
	_, err := ParseCertificate(`{"r":{"Certificates":[{"domain":{"main":"a"},"certificate":"%%%","key":"k"}]}}`, "a")
	assert.Error(t, err)
}
