package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niklasmelin/license-manager/internal/client"
	"github.com/niklasmelin/license-manager/pkg/cliio"
)

func newTestFactory() (*Factory, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	f := &Factory{
		Client:    client.New(client.Config{BackendBaseURL: "http://127.0.0.1:0"}),
		IOStreams: &cliio.IOStreams{Out: out, Err: errOut},
	}

	return f, out, errOut
}

func TestNewRootCommandHelp(t *testing.T) {
	f, out, _ := newTestFactory()

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"--help"})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "lmctl is the operator CLI")
}

func TestNewRootCommandHasEveryResourceGroup(t *testing.T) {
	f, _, _ := newTestFactory()

	cmd := NewRootCommand(f)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"cluster", "configuration", "product", "feature", "license-server", "booking"}, names)
}

func TestSilenceTreeAppliesToEveryLeaf(t *testing.T) {
	f, _, _ := newTestFactory()

	cmd := NewRootCommand(f)

	for _, group := range cmd.Commands() {
		assert.True(t, group.SilenceErrors)

		for _, leaf := range group.Commands() {
			assert.True(t, leaf.SilenceErrors)
			assert.True(t, leaf.SilenceUsage)
		}
	}
}
