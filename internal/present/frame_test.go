package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name string
		in   Size
		want Size
	}{
		{name: "normal", in: Size{Rows: 3, Cols: 4}, want: Size{Rows: 3, Cols: 4}},
		{name: "empty", in: Size{}, want: Size{}},
		{name: "negative", in: Size{Rows: -1, Cols: -5}, want: Size{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.in)
			assert.Equal(t, tt.want, f.Size())
			assert.Len(t, f.Lines(), tt.want.Rows)
			for _, l := range f.Lines() {
				assert.Len(t, []rune(l), tt.want.Cols)
			}
		})
	}
}

func TestFrame_WritesAreClipped(t *testing.T) {
	f := NewFrame(Size{Rows: 2, Cols: 5})

	next := f.WriteString(0, 3, "abcdef", StyleTitle)
	assert.Equal(t, 9, next)
	f.WriteString(-1, 0, "nope", StyleText)
	f.WriteString(5, 0, "nope", StyleText)
	f.WriteString(1, -2, "xyz", StyleText)

	assert.Equal(t, "   ab", f.Line(0))
	assert.Equal(t, "z    ", f.Line(1))
	assert.Equal(t, StyleTitle, f.Cell(0, 4).Style)
	assert.Equal(t, blank, f.Cell(9, 9))
}

func TestFrame_Sanitizes(t *testing.T) {
	f := NewFrame(Size{Rows: 1, Cols: 7})
	next := f.WriteString(0, 0, "a\tb界é\x1b", StyleText)

	assert.Equal(t, 7, next)
	assert.Equal(t, "a?b界é?", f.Line(0))
	assert.Equal(t, Continuation, f.Cell(0, 4).Ch)
}

func TestFrame_WideRunes(t *testing.T) {
	tests := []struct {
		name  string
		cols  int
		write func(f *Frame)
		want  string
	}{
		{
			name:  "fills two cells",
			cols:  6,
			write: func(f *Frame) { f.WriteString(0, 0, "漢字foo", StyleText) },
			want:  "漢字fo",
		},
		{
			name:  "no room at the right edge",
			cols:  3,
			write: func(f *Frame) { f.WriteString(0, 0, "ab漢", StyleText) },
			want:  "ab ",
		},
		{
			name: "overwriting the lead blanks the second half",
			cols: 4,
			write: func(f *Frame) {
				f.WriteString(0, 0, "漢字", StyleText)
				f.Set(0, 0, 'x', StyleText)
			},
			want: "x 字",
		},
		{
			name: "overwriting the second half blanks the lead",
			cols: 4,
			write: func(f *Frame) {
				f.WriteString(0, 0, "漢字", StyleText)
				f.Set(0, 1, 'y', StyleText)
			},
			want: " y字",
		},
		{
			name: "wide over a straddled pair",
			cols: 4,
			write: func(f *Frame) {
				f.WriteString(0, 0, "漢字", StyleText)
				f.Set(0, 1, '本', StyleText)
			},
			want: " 本 ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(Size{Rows: 1, Cols: tt.cols})
			tt.write(f)
			assert.Equal(t, tt.want, f.Line(0))
			assert.Equal(t, tt.cols, TextWidth(f.Line(0)))
		})
	}
}

func TestFrame_String(t *testing.T) {
	f := NewFrame(Size{Rows: 2, Cols: 6})
	f.WriteString(0, 0, "hi", StyleText)
	f.WriteString(1, 2, "yo", StyleText)

	assert.Equal(t, "hi\n  yo", f.String())
}

func TestFrame_Runs(t *testing.T) {
	f := NewFrame(Size{Rows: 1, Cols: 7})
	f.WriteString(0, 0, "CPU", StyleLabel)
	f.WriteString(0, 4, "42", StyleWarning)

	runs := f.Runs(0)
	require.Len(t, runs, 4)
	assert.Equal(t, Run{Text: "CPU", Style: StyleLabel}, runs[0])
	assert.Equal(t, Run{Text: " ", Style: StyleText}, runs[1])
	assert.Equal(t, Run{Text: "42", Style: StyleWarning}, runs[2])
	assert.Equal(t, Run{Text: " ", Style: StyleText}, runs[3])

	assert.Nil(t, f.Runs(3))
	assert.Nil(t, NewFrame(Size{Rows: 1}).Runs(0))
}

func TestFrame_Fill(t *testing.T) {
	f := NewFrame(Size{Rows: 1, Cols: 4})
	f.Fill(0, 1, 10, '-', StyleMuted)

	assert.Equal(t, " ---", f.Line(0))
	assert.Equal(t, StyleMuted, f.Cell(0, 3).Style)
}

func TestSize_Covers(t *testing.T) {
	min := Size{Rows: 24, Cols: 80}
	assert.True(t, Size{Rows: 24, Cols: 80}.Covers(min))
	assert.True(t, Size{Rows: 50, Cols: 200}.Covers(min))
	assert.False(t, Size{Rows: 23, Cols: 200}.Covers(min))
	assert.False(t, Size{Rows: 50, Cols: 79}.Covers(min))
}

func TestStyle_String(t *testing.T) {
	assert.Equal(t, "stale", StyleStale.String())
	assert.Equal(t, "text", Style(200).String())
}
