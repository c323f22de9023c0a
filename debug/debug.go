package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Store  bool
	Locks  bool
	Sort   bool
	Splice bool
	Call   bool
	Parse  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Store = boolEnv("JSV_DEBUG_STORE")
	d.Locks = boolEnv("JSV_DEBUG_LOCKS")
	d.Sort = boolEnv("JSV_DEBUG_SORT")
	d.Splice = boolEnv("JSV_DEBUG_SPLICE")
	d.Call = boolEnv("JSV_DEBUG_CALL")
	d.Parse = boolEnv("JSV_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Store() bool {
	return d.Store
}
func Locks() bool {
	return d.Locks
}
func Sort() bool {
	return d.Sort
}
func Splice() bool {
	return d.Splice
}
func Call() bool {
	return d.Call
}
func Parse() bool {
	return d.Parse
}
