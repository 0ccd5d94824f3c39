//go:build linux

package notify

import (
	"reflect"
	"testing"
)

func TestLinuxArgs(t *testing.T) {
	got := linuxArgs("-title", "body", true)
	want := []string{"--app-name=compass", "--urgency=normal", "--", "-title", "body"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("linuxArgs() = %v, want %v", got, want)
	}
}
