package pwsafe

import "testing"

func TestStretchDeterministic(t *testing.T) {
	salt := []byte("0123456789012345678901234567890a")[:32]
	a := Stretch(salt, []byte("hunter2"), 100)
	b := Stretch(salt, []byte("hunter2"), 100)
	if a != b {
		t.Fatalf("stretch not deterministic")
	}
}

func TestStretchDependsOnAllInputs(t *testing.T) {
	salt1 := make([]byte, 32)
	salt2 := make([]byte, 32)
	salt2[0] = 1

	base := Stretch(salt1, []byte("pw"), 10)

	if Stretch(salt2, []byte("pw"), 10) == base {
		t.Fatalf("stretch ignored salt")
	}
	if Stretch(salt1, []byte("pw2"), 10) == base {
		t.Fatalf("stretch ignored passphrase")
	}
	if Stretch(salt1, []byte("pw"), 11) == base {
		t.Fatalf("stretch ignored iteration count")
	}
}
