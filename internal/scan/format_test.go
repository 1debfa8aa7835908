package scan

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 500, "500 B"},
		{"max bytes before KB", 1023, "1023 B"},
		{"exactly 1KB", 1024, "1.0 KB"},
		{"1.5KB", 1536, "1.5 KB"},
		{"max KB", 1024*1024 - 1, "1024.0 KB"},
		{"exactly 1MB", 1024 * 1024, "1.0 MB"},
		{"2.5MB", 2621440, "2.5 MB"},
		{"exactly 1GB", 1024 * 1024 * 1024, "1.0 GB"},
		{"multi GB", 5 * 1024 * 1024 * 1024, "5.0 GB"},
		{"beyond GB stays GB", 2048 * 1024 * 1024 * 1024, "2048.0 GB"},
		{"negative clamps", -42, "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSize(tt.input)
			if got != tt.want {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
