package dovado

import "testing"

func TestCommandTemplates(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sms", SMSCommand("+46701234567"), "sms sendtxt +46701234567"},
		{"sms local number", SMSCommand("0701234567"), "sms sendtxt 0701234567"},
		{"user", UserCommand("admin"), "user admin"},
		{"pass", PassCommand("s3cret"), "pass s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestValidateSMS(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		message string
		wantErr bool
	}{
		{"international", "+46701234567", "hello", false},
		{"local", "0701234567", "hello\nworld", false},
		{"empty number", "", "hello", true},
		{"letters in number", "07012abc", "hello", true},
		{"too short", "12", "hello", true},
		{"empty message", "0701234567", "", true},
		{"terminator line", "0701234567", "first\n.\nlast", true},
		{"terminator line with CRLF", "0701234567", "first\r\n.\r\nlast", true},
		{"dot inside text", "0701234567", "see you at 5.30.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSMS(tt.number, tt.message)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSMS() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
