package analysis

import (
	"context"

	"github.com/nitin85058/VEYA/internal/vlm"
)

// fakeVLM scripts model responses for tests.
type fakeVLM struct {
	describeFn     func(ctx context.Context, prompt string, img vlm.Image) (string, error)
	describeJSONFn func(ctx context.Context, prompt string, img vlm.Image) (string, error)
	lastPrompt     string
}

func (f *fakeVLM) Describe(ctx context.Context, prompt string, img vlm.Image) (string, error) {
	f.lastPrompt = prompt
	if f.describeFn == nil {
		return "", nil
	}
	return f.describeFn(ctx, prompt, img)
}

func (f *fakeVLM) DescribeJSON(ctx context.Context, prompt string, img vlm.Image) (string, error) {
	f.lastPrompt = prompt
	if f.describeJSONFn == nil {
		return "", nil
	}
	return f.describeJSONFn(ctx, prompt, img)
}

func scripted(response string, err error) func(context.Context, string, vlm.Image) (string, error) {
	return func(context.Context, string, vlm.Image) (string, error) {
		return response, err
	}
}
