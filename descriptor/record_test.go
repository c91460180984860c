package descriptor

import "testing"

func TestRecordRoundTrip(t *testing.T) {
	want := Record{NameOff: 12, NameLen: 6, Priority: -5, Hook: 3}
	var buf [RecordSize]byte
	want.Put(buf[:])
	got := DecodeRecord(buf[:])
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestPackLayout(t *testing.T) {
	region, names, err := Pack([]Entry{
		{ID: "/gpio0", Priority: 10},
		{ID: "/uart0", Priority: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(region) != 2*RecordSize {
		t.Fatalf("region size %d, want %d", len(region), 2*RecordSize)
	}
	if string(names) != "/gpio0/uart0" {
		t.Fatalf("name table %q", names)
	}

	r0 := DecodeRecord(region[:RecordSize])
	r1 := DecodeRecord(region[RecordSize:])
	if r0.NameOff != 0 || r0.NameLen != 6 || r0.Priority != 10 || r0.Hook != 0 {
		t.Fatalf("record 0 = %+v", r0)
	}
	if r1.NameOff != 6 || r1.NameLen != 6 || r1.Priority != 5 || r1.Hook != 1 {
		t.Fatalf("record 1 = %+v", r1)
	}
}

func TestPackRejectsBadIDs(t *testing.T) {
	if _, _, err := Pack([]Entry{{ID: ""}}); err == nil {
		t.Fatal("empty id accepted")
	}
	long := make([]byte, MaxIDLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, _, err := Pack([]Entry{{ID: string(long)}}); err == nil {
		t.Fatal("overlong id accepted")
	}
}

func TestDescriptorCheck(t *testing.T) {
	ok := func() error { return nil }
	cases := []struct {
		name string
		d    Descriptor
		want bool
	}{
		{"valid", Descriptor{ID: "/led0", Init: ok, Cleanup: ok}, true},
		{"empty id", Descriptor{Init: ok, Cleanup: ok}, false},
		{"nil init", Descriptor{ID: "/led0", Cleanup: ok}, false},
		{"nil cleanup", Descriptor{ID: "/led0", Init: ok}, false},
	}
	for _, tc := range cases {
		err := tc.d.Check()
		if (err == nil) != tc.want {
			t.Errorf("%s: Check() = %v", tc.name, err)
		}
	}
}
