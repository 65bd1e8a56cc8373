// internal/discovery/discovery_test.go
package discovery

import (
	"errors"
	"io"
	"testing"

	"github.com/quadlink/linkmon/internal/logging"
)

// ---- fakes ----

type fakeScanner struct {
	eps []Endpoint
	err error
}

func (f *fakeScanner) Scan() ([]Endpoint, error) { return f.eps, f.err }

type fakeLister struct {
	ports []Endpoint
	err   error
}

func (f *fakeLister) List() ([]Endpoint, error) { return f.ports, f.err }

func discard() *logging.Logger { return logging.NewWriter(io.Discard) }

// ---- tests ----

func TestLinkEndpoints_ErrorYieldsEmpty(t *testing.T) {
	got := LinkEndpoints(&fakeScanner{err: errors.New("driver down")}, discard())
	if len(got) != 0 {
		t.Fatalf("got %d endpoints, want 0 on scan error", len(got))
	}
}

func TestLinkEndpoints_PreservesDriverOrder(t *testing.T) {
	eps := []Endpoint{
		{ID: "radio://0/b"},
		{ID: "radio://0/a"},
	}

	got := LinkEndpoints(&fakeScanner{eps: eps}, discard())
	if len(got) != 2 || got[0].ID != "radio://0/b" || got[1].ID != "radio://0/a" {
		t.Fatalf("driver order not preserved: %+v", got)
	}
}

func TestSerialEndpoints_ErrorYieldsEmpty(t *testing.T) {
	got := SerialEndpoints(&fakeLister{err: errors.New("enumeration failed")}, discard())
	if len(got) != 0 {
		t.Fatalf("got %d ports, want 0 on list error", len(got))
	}
}

func TestSerialEndpoints_KeywordFilter(t *testing.T) {
	ports := []Endpoint{
		{ID: "/dev/ttyUSB0", Description: "CP2102N USB to UART Bridge"},
		{ID: "/dev/ttyACM0", Description: "Some Mouse"},
		{ID: "/dev/ttyUSB1", Description: "USB-Serial CH340"},
		{ID: "/dev/ttyACM1", Description: "XIAO ESP32S3 Sense"},
	}

	got := SerialEndpoints(&fakeLister{ports: ports}, discard())

	want := []string{"/dev/ttyUSB0", "/dev/ttyUSB1", "/dev/ttyACM1"}
	if len(got) != len(want) {
		t.Fatalf("got %d ports, want %d: %+v", len(got), len(want), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("port %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSerialEndpoints_FilterIsCaseInsensitive(t *testing.T) {
	ports := []Endpoint{
		{ID: "/dev/ttyACM2", Description: "Espressif ESP32-S3"},
	}

	got := SerialEndpoints(&fakeLister{ports: ports}, discard())
	if len(got) != 1 {
		t.Fatalf("uppercase description not matched: %+v", got)
	}
}
