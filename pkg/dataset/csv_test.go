package dataset

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInfersColumnTypes(t *testing.T) {
	input := strings.NewReader(strings.Join([]string{
		"age,name,joined,score",
		"25,Alice,2024-01-02,1.5",
		"30,Bob,2024-02-03,NA",
		"NULL,Carol,2024-03-04,2.75",
	}, "\n"))

	d, err := Read(input)
	require.NoError(t, err)
	require.Equal(t, 3, d.NumRows())

	age := d.Column("age")
	require.NotNil(t, age)
	assert.Equal(t, TypeNumeric, age.Type)
	assert.Equal(t, []any{25.0, 30.0, nil}, age.Values)

	name := d.Column("name")
	assert.Equal(t, TypeText, name.Type)

	joined := d.Column("joined")
	assert.Equal(t, TypeTime, joined.Type)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), joined.Values[0])

	score := d.Column("score")
	assert.Equal(t, TypeNumeric, score.Type)
	assert.Nil(t, score.Values[1], "NA token must become null")
}

func TestReadMixedColumnStaysText(t *testing.T) {
	input := strings.NewReader("amount\n100\n200\nabc\n")

	d, err := Read(input)
	require.NoError(t, err)
	assert.Equal(t, TypeText, d.Column("amount").Type)
	assert.Equal(t, "100", d.Column("amount").Values[0])
}

func TestReadAllNullColumnIsText(t *testing.T) {
	input := strings.NewReader("a,b\nNULL,1\n,2\n")

	d, err := Read(input)
	require.NoError(t, err)
	assert.Equal(t, TypeText, d.Column("a").Type)
	assert.Equal(t, 2, d.Column("a").NullCount())
}

func TestWriteReadRoundTrip(t *testing.T) {
	original, err := New(
		&Column{Name: "age", Type: TypeNumeric, Values: []any{25.0, nil, 30.5}},
		&Column{Name: "name", Type: TypeText, Values: []any{"Alice", "Bob", nil}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(original, &buf))

	parsed, err := Read(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(original, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleIsDeterministicAndOrderPreserving(t *testing.T) {
	values := make([]any, 1000)
	for i := range values {
		values[i] = float64(i)
	}
	d, err := New(&Column{Name: "n", Type: TypeNumeric, Values: values})
	require.NoError(t, err)

	first := Sample(d, 100)
	second := Sample(d, 100)

	require.Equal(t, 100, first.NumRows())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("sampling is not deterministic (-first +second):\n%s", diff)
	}

	prev := -1.0
	for _, v := range first.Columns[0].Values {
		f := v.(float64)
		assert.Greater(t, f, prev, "sampled rows must keep original order")
		prev = f
	}
}

func TestSampleNoopWhenSmallEnough(t *testing.T) {
	d, err := New(&Column{Name: "n", Type: TypeNumeric, Values: []any{1.0, 2.0}})
	require.NoError(t, err)
	assert.Same(t, d, Sample(d, 10))
}
