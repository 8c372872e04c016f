package corpus

import "testing"

func TestRunZ80SSTFileSimpleNOP(t *testing.T) {
	data := []byte(`[
		{
			"name": "00 0",
			"state": {"af":0,"bc":0,"de":0,"hl":0,"af_":0,"bc_":0,"de_":0,"hl_":0,
			          "ix":0,"iy":0,"sp":0,"pc":0,"i":0,"r":0,"iff1":0,"iff2":0,"im":0,
			          "ram":[[0,0]]},
			"final": {"af":0,"bc":0,"de":0,"hl":0,"af_":0,"bc_":0,"de_":0,"hl_":0,
			          "ix":0,"iy":0,"sp":0,"pc":1,"i":0,"r":1,"iff1":0,"iff2":0,"im":0,
			          "ram":[[0,0]]}
		}
	]`)

	results, err := RunZ80SSTFile(data)
	if err != nil {
		t.Fatalf("RunZ80SSTFile: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("NOP case failed: %v", results[0].Mismatches)
	}
}
