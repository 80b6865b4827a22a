package procstat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aknopov/perfharness/mocker"
	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
)

const testStat = `cpu  10132153 290696 3084719 46828483 16683 0 25195 0 175628 0
cpu0 1393280 32966 572056 13343292 6130 0 17875 0 23933 0
cpu3 1335 32 572 13343 6 0 17 0 23 0
cpu30 777 0 1 2 3 0 0 0 0 0
cpu4 x 1 2 3
cpu5
intr 1462898 36 9 0 0 0 0
ctxt 115315
`

var errTest = errors.New("test error")

func writeStat(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "stat")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCpuUser(t *testing.T) {
	assertT := assert.New(t)

	defer mocker.ReplaceItem(&statPath, writeStat(t, testStat))()

	user, err := CpuUser(0)
	assertT.NoError(err)
	assertT.EqualValues(1393280, user)

	// "cpu3" must not match "cpu30"
	user, err = CpuUser(3)
	assertT.NoError(err)
	assertT.EqualValues(1335, user)

	user, err = CpuUser(30)
	assertT.NoError(err)
	assertT.EqualValues(777, user)
}

func TestCpuUserErrors(t *testing.T) {
	assertT := assert.New(t)

	defer mocker.ReplaceItem(&statPath, writeStat(t, testStat))()

	_, err := CpuUser(4)
	assertT.ErrorIs(err, ErrNoCpuStat, "malformed value")
	_, err = CpuUser(5)
	assertT.ErrorIs(err, ErrNoCpuStat, "missing value")
	_, err = CpuUser(7)
	assertT.ErrorIs(err, ErrNoCpuStat, "missing core")

	statPath = filepath.Join(t.TempDir(), "none")
	_, err = CpuUser(0)
	assertT.ErrorIs(err, os.ErrNotExist)
}

func TestCpuUserLive(t *testing.T) {
	if _, err := os.Stat("/proc/stat"); err != nil {
		t.Skip(err)
	}
	_, err := CpuUser(0)
	assert.NoError(t, err)
}

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exe }

func TestOtherInstances(t *testing.T) {
	assertT := assert.New(t)

	procs := []ps.Process{
		fakeProcess{100, "perfbench"},
		fakeProcess{200, "perfbench"},
		fakeProcess{300, "bash"},
		fakeProcess{400, "averyverylongexe"[:15]},
	}
	defer mocker.ReplaceItem(&getProcessList, func() ([]ps.Process, error) { return procs, nil })()
	defer mocker.ReplaceItem(&getPid, func() int { return 100 })()

	pids, err := OtherInstances("/usr/local/bin/perfbench")
	assertT.NoError(err)
	assertT.Equal([]int{200}, pids)

	pids, err = OtherInstances("averyverylongexe")
	assertT.NoError(err)
	assertT.Equal([]int{400}, pids)

	pids, err = OtherInstances("nothing")
	assertT.NoError(err)
	assertT.Empty(pids)
}

func TestOtherInstancesFailure(t *testing.T) {
	defer mocker.ReplaceItem(&getProcessList, func() ([]ps.Process, error) { return nil, errTest })()

	_, err := OtherInstances("perfbench")
	assert.ErrorIs(t, err, errTest)
}
