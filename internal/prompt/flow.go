// Package prompt строит последовательности зависимых вопросов.
//
// Flow - упорядоченный список шагов. Шаг выбора получает варианты функцией
// от уже полученных ответов, поэтому вопрос N+1 формируется только после
// ответа на вопрос N. Варианты несут идентификатор рядом с подписью.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAborted   = errors.New("prompt aborted")
	ErrNoOptions = errors.New("no options available")
)

// Kind - тип шага
type Kind int

const (
	KindInput Kind = iota
	KindSelect
)

// Option - вариант выбора
type Option struct {
	Label string
	ID    int64
	// None отмечает служебный вариант "нет ссылки"
	None bool
}

// Answer - ответ на шаг: текст для ввода, вариант для выбора
type Answer struct {
	Text   string
	Option Option
}

// Answers - ответы, собранные по имени шага
type Answers map[string]Answer

// Text возвращает введённый текст шага
func (a Answers) Text(step string) string {
	return a[step].Text
}

// Option возвращает выбранный вариант шага
func (a Answers) Option(step string) Option {
	return a[step].Option
}

// OptionsFunc загружает варианты выбора с учётом предыдущих ответов
type OptionsFunc func(ctx context.Context, answers Answers) ([]Option, error)

// Step описывает один вопрос
type Step struct {
	Name     string
	Kind     Kind
	Message  string
	Options  OptionsFunc
	Sentinel *Option
}

// Input создаёт шаг свободного ввода
func Input(name, message string) Step {
	return Step{Name: name, Kind: KindInput, Message: message}
}

// Select создаёт шаг выбора из списка
func Select(name, message string, options OptionsFunc) Step {
	return Step{Name: name, Kind: KindSelect, Message: message, Options: options}
}

// WithSentinel добавляет в конец списка служебный вариант "нет ссылки"
func (s Step) WithSentinel(label string) Step {
	s.Sentinel = &Option{Label: label, None: true}
	return s
}

// Prompter задаёт вопросы пользователю
type Prompter interface {
	Input(ctx context.Context, message string) (string, error)
	Select(ctx context.Context, message string, options []Option) (Option, error)
}

// Flow - последовательность шагов
type Flow struct {
	steps []Step
}

// NewFlow создаёт последовательность из шагов
func NewFlow(steps ...Step) *Flow {
	return &Flow{steps: steps}
}

// Steps возвращает шаги в порядке выполнения
func (f *Flow) Steps() []Step {
	return f.steps
}

// Run выполняет шаги строго по порядку и возвращает собранные ответы.
// Первая ошибка прерывает выполнение.
func (f *Flow) Run(ctx context.Context, p Prompter) (Answers, error) {
	answers := make(Answers, len(f.steps))

	for _, step := range f.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch step.Kind {
		case KindInput:
			text, err := p.Input(ctx, step.Message)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", step.Name, err)
			}
			answers[step.Name] = Answer{Text: strings.TrimSpace(text)}

		case KindSelect:
			var options []Option
			if step.Options != nil {
				loaded, err := step.Options(ctx, answers)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", step.Name, err)
				}
				options = loaded
			}
			if step.Sentinel != nil {
				options = append(options, *step.Sentinel)
			}
			if len(options) == 0 {
				return nil, fmt.Errorf("%s: %w", step.Name, ErrNoOptions)
			}

			choice, err := p.Select(ctx, step.Message, options)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", step.Name, err)
			}
			answers[step.Name] = Answer{Text: choice.Label, Option: choice}

		default:
			return nil, fmt.Errorf("%s: unknown step kind %d", step.Name, step.Kind)
		}
	}

	return answers, nil
}
