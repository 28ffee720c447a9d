package platform

import "testing"

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"public https host", "https://ghe.example.org", false},
		{"localhost allowed for development", "http://localhost:8080", false},
		{"loopback IPv4 allowed", "http://127.0.0.1:9999", false},
		{"ten dot blocked", "http://10.0.0.5", true},
		{"one seventy two range blocked", "https://172.20.3.4", true},
		{"one seventy two outside range allowed", "https://172.15.1.1", false},
		{"one ninety two blocked", "https://192.168.1.1", true},
		{"cloud metadata blocked", "http://169.254.169.254", true},
		{"cloud metadata as subdomain suffix blocked", "http://evil.169.254.169.254", true},
		{"IPv6 loopback blocked", "http://[::1]:8080", true},
		{"IPv6 link-local blocked", "http://[fe80::1]", true},
		{"ftp scheme blocked", "ftp://example.org", true},
		{"no scheme blocked", "example.org", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBaseURL(tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBaseURL(%q) error = %v, wantErr %v", tt.baseURL, err, tt.wantErr)
			}
		})
	}
}
