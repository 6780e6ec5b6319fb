package user

import "testing"

func TestShippingAddress(t *testing.T) {
	tests := []struct {
		name string
		usr  User
		want string
	}{
		{
			name: "full address",
			usr:  User{Address: "1 Test Street", City: "Testville", Zip: "12345", Country: "Testland"},
			want: "1 Test Street, Testville, 12345, Testland",
		},
		{
			name: "partial address",
			usr:  User{City: "Testville", Country: "Testland"},
			want: "Testville, Testland",
		},
		{
			name: "no address",
			usr:  User{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.usr.ShippingAddress(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
