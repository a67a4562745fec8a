package testutils

import (
	"context"
	"fmt"

	"github.com/employee-tracker/internal/prompt"
)

// ScriptedPrompter отвечает на вопросы заранее заданными ответами.
// Для выбора ответ - подпись варианта. Когда ответы кончаются, возвращается prompt.ErrAborted.
type ScriptedPrompter struct {
	answers  []string
	Messages []string
	Offered  [][]prompt.Option
}

// NewScriptedPrompter создаёт prompter с очередью ответов
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// Push добавляет ответы в конец очереди
func (p *ScriptedPrompter) Push(answers ...string) {
	p.answers = append(p.answers, answers...)
}

// Remaining возвращает число неиспользованных ответов
func (p *ScriptedPrompter) Remaining() int {
	return len(p.answers)
}

func (p *ScriptedPrompter) next(message string) (string, error) {
	p.Messages = append(p.Messages, message)
	if len(p.answers) == 0 {
		return "", prompt.ErrAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *ScriptedPrompter) Input(_ context.Context, message string) (string, error) {
	return p.next(message)
}

func (p *ScriptedPrompter) Select(_ context.Context, message string, options []prompt.Option) (prompt.Option, error) {
	p.Offered = append(p.Offered, options)

	label, err := p.next(message)
	if err != nil {
		return prompt.Option{}, err
	}
	for _, opt := range options {
		if opt.Label == label {
			return opt, nil
		}
	}
	return prompt.Option{}, fmt.Errorf("scripted answer %q is not among the offered options", label)
}

// LastOffered возвращает подписи вариантов последнего шага выбора
func (p *ScriptedPrompter) LastOffered() []string {
	if len(p.Offered) == 0 {
		return nil
	}
	last := p.Offered[len(p.Offered)-1]
	labels := make([]string, len(last))
	for i, opt := range last {
		labels[i] = opt.Label
	}
	return labels
}
