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
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/tarutil"
	"shanhu.io/virgo/dock"
)

// DockerCompressor runs the closure compiler inside a docker container.
// The image needs to have java installed.
type DockerCompressor struct {
	Client *dock.Client
	Image  string

	// Jar is the path of the compiler jar file inside the container.
	Jar string

	// Stderr receives the container logs. Default is os.Stderr.
	Stderr io.Writer
}

// NewDockerCompressor creates a compressor that uses the local docker
// daemon.
func NewDockerCompressor(image, jar string) *DockerCompressor {
	return &DockerCompressor{
		Client: dock.NewUnixClient(""),
		Image:  image,
		Jar:    jar,
	}
}

const (
	dockerPackIn  = "/pack/in"
	dockerPackOut = "/pack/out.js"
)

// dockerInputs maps the files to their paths inside the container,
// keeping the order.
func dockerInputs(files []string) []string {
	var ins []string
	for i, f := range files {
		name := fmt.Sprintf("%04d-%s", i, filepath.Base(f))
		ins = append(ins, path.Join(dockerPackIn, name))
	}
	return ins
}

// Compress copies the files into a new container, runs the compiler and
// copies the output back.
func (c *DockerCompressor) Compress(files []string) ([]byte, error) {
	jar := c.Jar
	if jar == "" {
		jar = DefaultClosureJar
	}
	ins := dockerInputs(files)

	cmd := []string{DefaultJava}
	cmd = append(cmd, closureArgs(jar, ins)...)
	cmd = append(cmd, "--js_output_file="+dockerPackOut)

	cont, err := dock.CreateCont(c.Client, c.Image, &dock.ContConfig{
		Cmd: cmd,
	})
	if err != nil {
		return nil, errcode.Annotate(err, "create container")
	}
	defer cont.Drop()

	ts := tarutil.NewStream()
	for i, f := range files {
		ts.AddFile(ins[i], new(tarutil.Meta), f)
	}
	if err := dock.CopyInTarStream(cont, ts, "/"); err != nil {
		return nil, errcode.Annotate(err, "copy input")
	}

	if err := cont.Start(); err != nil {
		return nil, errcode.Annotate(err, "start container")
	}
	logs := c.Stderr
	if logs == nil {
		logs = os.Stderr
	}
	if err := cont.FollowLogs(logs); err != nil {
		return nil, errcode.Annotate(err, "stream logs")
	}
	status, err := cont.Wait(dock.NotRunning)
	if err != nil {
		return nil, errcode.Annotate(err, "wait container")
	}
	if status != 0 {
		return nil, errcode.Internalf("closure compiler exit with %d", status)
	}

	tmp, err := os.MkdirTemp("", "pack")
	if err != nil {
		return nil, errcode.Annotate(err, "make temp dir")
	}
	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, "out.js")
	if err := cont.CopyOutFile(dockerPackOut, out); err != nil {
		return nil, errcode.Annotate(err, "copy output")
	}
	return os.ReadFile(out)
}
