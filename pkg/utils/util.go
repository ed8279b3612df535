package utils

import (
	"bytes"
	"fmt"
	"runtime"
)

// PanicTrace panic 值加调用栈，skip 掉 recover 所在的两层
func PanicTrace(err any) string {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%v\n", err)
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fmt.Fprintf(buf, "%s:%d (0x%x)\n", file, line, pc)
	}
	return buf.String()
}
