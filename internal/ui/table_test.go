package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortNatural(t *testing.T) {
	items := []string{"Task 10", "task 2", "Alpha", "task 1"}

	SortNatural(items, func(s string) string { return s })

	assert.Equal(t, []string{"Alpha", "task 1", "task 2", "Task 10"}, items)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	PrintTable([][]string{{"ID", "TITLE"}, {"1", "write report"}}, &buf)

	assert.Contains(t, buf.String(), "write report")
	assert.Contains(t, buf.String(), "TITLE")
}
