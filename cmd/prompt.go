package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	sim "github.com/inference-sim/cpusim/sim"
)

// PromptAnswers is what an interactive session collects.
type PromptAnswers struct {
	Quantum       int
	ContextSwitch int
	Processes     []sim.ProcessRecord
}

// prompter asks one question per line and reads whitespace-separated answers.
type prompter struct {
	words *bufio.Scanner
	out   io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	words := bufio.NewScanner(in)
	words.Split(bufio.ScanWords)
	return &prompter{words: words, out: out}
}

func (p *prompter) word(msg string) (string, error) {
	_, _ = fmt.Fprintln(p.out, msg)
	if !p.words.Scan() {
		if err := p.words.Err(); err != nil {
			return "", fmt.Errorf("reading answer to %q: %w", msg, err)
		}
		return "", fmt.Errorf("reading answer to %q: %w", msg, io.ErrUnexpectedEOF)
	}
	return p.words.Text(), nil
}

func (p *prompter) integer(msg string) (int, error) {
	w, err := p.word(msg)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, fmt.Errorf("answer to %q: %q is not an integer", msg, w)
	}
	return v, nil
}

// PromptWorkload asks for the process count, the Round Robin quantum, the
// context-switch time and then each process in turn.
func PromptWorkload(in io.Reader, out io.Writer) (*PromptAnswers, error) {
	p := newPrompter(in, out)
	n, err := p.integer("Number of processes: ")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: number of processes must be non-negative, got %d", sim.ErrInvalidProcess, n)
	}
	answers := &PromptAnswers{Processes: make([]sim.ProcessRecord, 0, n)}
	if answers.Quantum, err = p.integer("Round Robin Time quantum: "); err != nil {
		return nil, err
	}
	if answers.ContextSwitch, err = p.integer("Context Switching Time: "); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		_, _ = fmt.Fprintf(p.out, "Enter process %d:\n", i+1)
		var rec sim.ProcessRecord
		if rec.Name, err = p.word("Process name: "); err != nil {
			return nil, err
		}
		if rec.ArrivalTime, err = p.integer("Arrival time: "); err != nil {
			return nil, err
		}
		if rec.BurstTime, err = p.integer("Burst time: "); err != nil {
			return nil, err
		}
		if rec.Priority, err = p.integer("Priority: "); err != nil {
			return nil, err
		}
		answers.Processes = append(answers.Processes, rec)
	}
	return answers, nil
}
