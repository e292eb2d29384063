package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"src.nfsh.sh/pkg/scan"
)

// String returns the pipeline in source form, with every link written out in
// full, e.g. "ls -l <1|0> wc".
func (p Pipeline) String() string {
	var sb strings.Builder
	for i, st := range p.Stages {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for j, arg := range st.Args {
			if j > 0 {
				sb.WriteByte(' ')
			}
			q, _ := scan.Quote(arg)
			sb.WriteString(q)
		}
		if len(st.Links) > 0 {
			sb.WriteString(" <")
			for j, l := range st.Links {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(l.String())
			}
			sb.WriteByte('>')
		}
	}
	return sb.String()
}

func (l Link) String() string {
	return fdString(l.Source) + "|" + fdString(l.Dest)
}

func fdString(fd int) string {
	if fd == Unattached {
		return "@"
	}
	return strconv.Itoa(fd)
}

// Dump writes a description of every stage of the pipeline, one field per
// line.
func Dump(w io.Writer, p Pipeline) {
	for _, st := range p.Stages {
		fmt.Fprintf(w, "stage: #args = %d, #links = %d\n", len(st.Args), len(st.Links))
		for i, arg := range st.Args {
			fmt.Fprintf(w, "    arg%d = %s\n", i, arg)
		}
		for i, l := range st.Links {
			fmt.Fprintf(w, "    link%d = %s -> %s\n", i, fdString(l.Source), fdString(l.Dest))
		}
	}
}
