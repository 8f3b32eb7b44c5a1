package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "all details",
			info: Info{Version: "v1.2.3", Commit: "1a2b3c4d5e6f", Date: "2024-05-01T10:00:00Z", GoVersion: "go1.25.0", Platform: "linux/amd64"},
			want: "totxt v1.2.3 (1a2b3c4, 2024-05-01T10:00:00Z, go1.25.0 linux/amd64)",
		},
		{
			name: "development build",
			info: Info{Version: "dev", GoVersion: "go1.25.0", Platform: "darwin/arm64"},
			want: "totxt dev (go1.25.0 darwin/arm64)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
