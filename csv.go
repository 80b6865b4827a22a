package perfharness

import (
	"io"
	"strconv"
	"strings"
)

// Columns preceding counter values in every row
var LeadingColumns = []string{"result", "time_elapsed_ms", "rdtscp"}

// Full header line without the line terminator
func Header(names []string) string {
	return strings.Join(append(append([]string{}, LeadingColumns...), names...), ",")
}

func WriteHeader(sink io.Writer, names []string) error {
	_, err := io.WriteString(sink, Header(names)+"\n")
	return err
}

// Writes one row in one write call
func WriteRow(sink io.Writer, trial TrialResult) error {
	buf := make([]byte, 0, 24*(len(LeadingColumns)+len(trial.Counts)))
	buf = strconv.AppendUint(buf, trial.Result, 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, trial.ElapsedMs, 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, trial.Cycles, 10)
	for _, v := range trial.Counts {
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, v, 10)
	}
	buf = append(buf, '\n')

	_, err := sink.Write(buf)
	return err
}
