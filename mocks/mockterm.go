package mocks

// MockTerm collects interpreter output so tests can assert on the
// transcript.  Fields are pointers so the value receiver methods
// mutate state shared by every copy.
type MockTerm struct {
	Output *[]string // every Print and Println payload, in order
	SawStr *string   // Println payloads concatenated
}

func (mt MockTerm) Print(msg string) {
	if mt.Output != nil {
		*mt.Output = append(*mt.Output, msg)
	}
}

func (mt MockTerm) Println(msg string) {
	if mt.Output != nil {
		*mt.Output = append(*mt.Output, msg+"\n")
	}
	if mt.SawStr != nil {
		*mt.SawStr = *mt.SawStr + msg
	}
}
