package upload

import "testing"

func TestDataURLStore(t *testing.T) {
	tests := []struct {
		name     string
		blob     Blob
		expected string
	}{
		{"typed", Blob{Data: []byte("hi"), ContentType: "image/png"}, "data:image/png;base64,aGk="},
		{"untyped", Blob{Data: []byte("hi")}, "data:application/octet-stream;base64,aGk="},
		{"empty", Blob{ContentType: "image/jpeg"}, "data:image/jpeg;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DataURLStore{}.CreateObjectURL(tt.blob)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
