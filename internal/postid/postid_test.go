package postid

import (
	"regexp"
	"testing"
	"time"
)

var hashFormat = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestHashKnownValues(t *testing.T) {
	cases := []struct {
		content string
		author  string
		ms      int64
		want    string
	}{
		{"Today I installed Linux on my school laptop", "alice", 1700000000000, "36F6F2B7"},
		{"hello world", "Anonymous", 1700000000000, "02FA9F5D"},
		{"hello world", "Anonymous", 1700000000001, "02FA9F5E"},
		{"a", "b", 0, "058392B5"},
	}
	for _, c := range cases {
		got := Hash(c.content, c.author, time.UnixMilli(c.ms))
		if got != c.want {
			t.Errorf("Hash(%q, %q, %d) = %s, want %s", c.content, c.author, c.ms, got, c.want)
		}
	}
}

func TestHashFormat(t *testing.T) {
	inputs := []struct {
		content string
		author  string
	}{
		{"", ""},
		{"short", "Guest_42"},
		{"unicode café ☕", "åuthor"},
		{"a much longer piece of content that runs on for a while to exercise the accumulator wraparound behavior over many characters", "somebody"},
	}
	for _, in := range inputs {
		for _, ms := range []int64{0, 1, 1700000000000, 9999999999999} {
			got := Hash(in.content, in.author, time.UnixMilli(ms))
			if !hashFormat.MatchString(got) {
				t.Errorf("Hash(%q, %q, %d) = %q, want 8 uppercase hex chars", in.content, in.author, ms, got)
			}
		}
	}
}

func TestHashDependsOnInstant(t *testing.T) {
	a := Hash("same content", "same author", time.UnixMilli(1700000000000))
	b := Hash("same content", "same author", time.UnixMilli(1700000000001))
	if a == b {
		t.Fatalf("expected differing hashes for differing instants, both %s", a)
	}
}
