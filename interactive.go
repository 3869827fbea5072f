package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err (or anything it wraps) is a ValidationError
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// validatePercent checks if rate is a valid percentage (0-100% as decimal 0.0-1.0)
func validatePercent(rate float64, fieldName string) error {
	if rate < 0 || rate > 1.0 {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("Rate must be between 0%% and 100%% (got %.1f%%)", rate*100)}
	}
	return nil
}

// ValidateAmount enforces 0 < amount <= maxAmount before anything is projected
func ValidateAmount(amount, maxAmount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ValidationError{Field: "amount", Message: "Please enter a valid positive amount"}
	}
	if amount > maxAmount {
		return ValidationError{Field: "amount", Message: fmt.Sprintf(
			"Amount too large. Please enter a reasonable amount under %s", FormatCurrency(maxAmount))}
	}
	return nil
}

// ParseAmount reads a purchase amount typed by the user ("$1,250.50", "1250.5")
// and validates it against maxAmount.
func ParseAmount(input string, maxAmount float64) (float64, error) {
	clean := cleanAmountInput(input)
	if clean == "" {
		return 0, ValidationError{Field: "amount", Message: "Please enter a valid positive amount"}
	}
	amount, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, ValidationError{Field: "amount", Message: "Please enter a valid positive amount"}
	}
	if err := ValidateAmount(amount, maxAmount); err != nil {
		return 0, err
	}
	return amount, nil
}

// InteractivePrompt runs the console calculator: enter an amount, read the results,
// then ask for another quote, start over, or quit.
type InteractivePrompt struct {
	reader  *bufio.Reader
	out     io.Writer
	session *Session
}

// NewInteractivePrompt creates a prompt reading from in and writing to out
func NewInteractivePrompt(session *Session, in io.Reader, out io.Writer) *InteractivePrompt {
	return &InteractivePrompt{
		reader:  bufio.NewReader(in),
		out:     out,
		session: session,
	}
}

// promptString prints prompt and returns the trimmed line; ok is false at end of input
func (p *InteractivePrompt) promptString(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", false
	}
	return strings.TrimSpace(input), true
}

// promptAmount asks until a valid amount is entered
func (p *InteractivePrompt) promptAmount(ctx context.Context) (CalculationResult, bool) {
	for {
		input, ok := p.promptString("Product cost (or q to quit): $")
		if !ok || strings.EqualFold(input, "q") {
			return CalculationResult{}, false
		}
		result, err := p.session.CalculateInput(ctx, input)
		if err != nil {
			fmt.Fprintf(p.out, "  ✗ %v\n", err)
			continue
		}
		return result, true
	}
}

// Run loops until the user quits or input ends
func (p *InteractivePrompt) Run(ctx context.Context) {
	fmt.Fprintln(p.out, RenderBanner())
	fmt.Fprintln(p.out, "Enter the cost of something you're thinking about buying, and see how much")
	fmt.Fprintln(p.out, "that money could grow if invested in a total stock market index fund instead!")
	fmt.Fprintln(p.out)

	for {
		result, ok := p.promptAmount(ctx)
		if !ok {
			fmt.Fprintln(p.out, "Goodbye!")
			return
		}
		fmt.Fprintln(p.out, RenderResult(result))

	menu:
		for {
			choice, ok := p.promptString("[n] another quote  [r] calculate another amount  [q] quit: ")
			if !ok {
				fmt.Fprintln(p.out, "Goodbye!")
				return
			}
			switch strings.ToLower(choice) {
			case "n":
				fmt.Fprintln(p.out, RenderQuote(p.session.AnotherQuote(0)))
			case "r", "":
				p.session.Reset()
				break menu
			case "q":
				fmt.Fprintln(p.out, "Goodbye!")
				return
			default:
				fmt.Fprintf(p.out, "  ✗ Unknown choice %q\n", choice)
			}
		}
	}
}
