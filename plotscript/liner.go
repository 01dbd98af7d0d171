package plotscript

import (
	"os"
	"strings"

	"fortio.org/log"
	"github.com/glycerine/liner"
)

// completionKeywords are offered on tab: every built-in as the head
// of a form, plus the repl commands.
func completionKeywords() []string {
	kw := []string{`(`}
	for _, name := range BuiltinNames() {
		kw = append(kw, "("+name+" ")
	}
	kw = append(kw, replCommands...)
	return kw
}

type Prompter struct {
	prompt   string
	history  string
	prompter *liner.State
}

func NewPrompter(prompt string, historyFile string) *Prompter {
	p := &Prompter{
		prompt:   prompt,
		history:  historyFile,
		prompter: liner.NewLiner(),
	}

	p.prompter.SetCtrlCAborts(false)

	keywords := completionKeywords()
	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range keywords {
			if strings.HasPrefix(n, line) {
				c = append(c, n)
			}
		}
		return
	})

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			p.prompter.ReadHistory(f)
			f.Close()
		}
	}

	return p
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if p.history == "" {
		return
	}
	if f, err := os.Create(p.history); err != nil {
		log.Warnf("Error writing history file: %v", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

func (p *Prompter) Getline(prompt *string) (line string, err error) {
	if prompt == nil {
		line, err = p.prompter.Prompt(p.prompt)
	} else {
		line, err = p.prompter.Prompt(*prompt)
	}
	if err == nil {
		p.prompter.AppendHistory(line)
		return line, nil
	}
	return "", err
}
