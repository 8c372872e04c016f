package corpus

import "testing"

// assembleCpmExitProgram returns a tiny COM image that prints "OK" via
// BDOS function 9 and returns to the warm-boot vector, exercising the
// harness's BDOS interception and exit trap without needing a real
// TST8080.COM on disk.
func assembleCpmExitProgram() []byte {
	img := make([]byte, 0, 32)
	// LXI D, msg (msg is at offset 11 relative to 0x100)
	img = append(img, 0x11, 0x0B, 0x01)
	// MVI C,9
	img = append(img, 0x0E, 0x09)
	// CALL 0x0005
	img = append(img, 0xCD, 0x05, 0x00)
	// JMP 0x0000
	img = append(img, 0xC3, 0x00, 0x00)
	// msg: "OK$"
	img = append(img, 'O', 'K', '$')
	return img
}

func TestRunComTestPassesOnCleanOutput(t *testing.T) {
	result := RunComTest("fixture", assembleCpmExitProgram(), 10000, nil)
	if !result.Passed {
		t.Fatalf("expected pass, got output %q", result.Output)
	}
	if result.Output != "OK" {
		t.Fatalf("output = %q, want %q", result.Output, "OK")
	}
}

func TestComOutputIndicatesPassDetectsError(t *testing.T) {
	if comOutputIndicatesPass("CPU IS OPERATIONAL") == false {
		t.Fatal("clean output should pass")
	}
	if comOutputIndicatesPass("ERROR FOUND") {
		t.Fatal("ERROR substring should fail")
	}
	if comOutputIndicatesPass("") {
		t.Fatal("empty output should not pass")
	}
}
