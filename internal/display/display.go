/*
 * display.go, part of convergo.
 *
 * Copyright 2025 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package display opens files with the viewer the desktop has for them.
package display

import (
	"fmt"
	"os/exec"
	"runtime"
)

//Command returns the program and arguments that open filename on the system goos.
func Command(goos, filename string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{filename}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", filename}
	default:
		return "xdg-open", []string{filename}
	}
}

//Open opens filename with the system viewer and returns without waiting for it.
func Open(filename string) error {
	prog, args := Command(runtime.GOOS, filename)
	cmd := exec.Command(prog, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("display: can't open %s with %s: %w", filename, prog, err)
	}
	//the viewer lives on after us, we just reap it if it ends first.
	go cmd.Wait()
	return nil
}
