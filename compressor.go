// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pack

import (
	"bytes"
	"io"
	"os"
	"os/exec"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/osutil"
)

// Compressor compresses a list of script files into a single script. The
// files are given in the order that they should be concatenated.
type Compressor interface {
	Compress(files []string) ([]byte, error)
}

type execJob struct {
	dir    string
	bin    string
	args   []string
	stderr io.Writer
}

func (j *execJob) command() *exec.Cmd {
	cmd := exec.Command(j.bin, j.args...)
	cmd.Dir = j.dir
	if j.stderr == nil {
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = j.stderr
	}
	osutil.CmdCopyEnv(cmd, "HOME")
	osutil.CmdCopyEnv(cmd, "PATH")
	osutil.CmdCopyEnv(cmd, "JAVA_HOME")
	return cmd
}

func (j *execJob) output() ([]byte, error) {
	out := new(bytes.Buffer)
	cmd := j.command()
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Default settings of the closure compiler. DefaultClosureJar is relative to
// the working directory.
const (
	DefaultJava       = "java"
	DefaultClosureJar = "java/compiler.jar"
)

func closureArgs(jar string, files []string) []string {
	args := []string{"-jar", jar, "--warning_level=QUIET"}
	for _, f := range files {
		args = append(args, "--js="+f)
	}
	return args
}

// ClosureCompiler compresses scripts by running the closure compiler as a
// local java program.
type ClosureCompiler struct {
	Java string // Java binary, default "java".
	Jar  string // Path to the compiler jar file, default DefaultClosureJar.

	// Stderr receives the diagnostics of the compiler. Default is
	// os.Stderr.
	Stderr io.Writer
}

// Compress runs the compiler over files and returns its output.
func (c *ClosureCompiler) Compress(files []string) ([]byte, error) {
	java := c.Java
	if java == "" {
		java = DefaultJava
	}
	jar := c.Jar
	if jar == "" {
		jar = DefaultClosureJar
	}

	j := &execJob{
		bin:    java,
		args:   closureArgs(jar, files),
		stderr: c.Stderr,
	}
	out, err := j.output()
	if err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			return nil, errcode.Internalf(
				"closure compiler exit with %d", exit.ExitCode(),
			)
		}
		return nil, errcode.Annotate(err, "run closure compiler")
	}
	return out, nil
}
