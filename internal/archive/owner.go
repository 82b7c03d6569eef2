package archive

import (
	"errors"

	"github.com/Zuo-Peng/skype-archive/internal/parse"
)

// ErrEmptyCorpus means no message with a sender survived parsing, so there is
// no owner.
var ErrEmptyCorpus = errors.New("no messages found to infer the archive owner")

// SenderCounts tallies messages per sender, remembering first-seen order.
type SenderCounts struct {
	counts map[string]int
	order  []string
}

func NewSenderCounts() *SenderCounts {
	return &SenderCounts{counts: make(map[string]int)}
}

// Add counts one message from sender. Messages without a real sender are
// not counted.
func (s *SenderCounts) Add(sender string) {
	if sender == "" || sender == parse.UnknownSender {
		return
	}
	if _, ok := s.counts[sender]; !ok {
		s.order = append(s.order, sender)
	}
	s.counts[sender]++
}

func (s *SenderCounts) AddMessages(msgs []parse.Message) *SenderCounts {
	for _, m := range msgs {
		s.Add(m.From)
	}
	return s
}

func (s *SenderCounts) Count(sender string) int {
	return s.counts[sender]
}

func (s *SenderCounts) Len() int {
	return len(s.order)
}

// Top returns the sender with the highest count. Ties go to the sender seen first.
func (s *SenderCounts) Top() (string, error) {
	if len(s.order) == 0 {
		return "", ErrEmptyCorpus
	}
	best := s.order[0]
	for _, sender := range s.order[1:] {
		if s.counts[sender] > s.counts[best] {
			best = sender
		}
	}
	return best, nil
}

// InferOwner returns the most frequent sender of msgs.
func InferOwner(msgs []parse.Message) (string, error) {
	return NewSenderCounts().AddMessages(msgs).Top()
}
