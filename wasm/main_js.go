//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/voxelsplace/shipvox/api"
	"github.com/voxelsplace/shipvox/voxel"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func jsonResult(v any, err error) any {
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(string(out))
}

// shipLayout(bytes[, cubeExtent]) returns the layout report as JSON.
func shipLayout(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing ship bytes")
	}
	var opts voxel.Options
	if len(args) > 1 {
		opts.CubeExtent = args[1].Float()
	}
	return jsonResult(api.LayoutBytes(bytesArg(args[0]), opts))
}

// shipFrame(bytes, viewportsYAML|null, width, height) returns the framed
// cameras as JSON.
func shipFrame(this js.Value, args []js.Value) any {
	if len(args) < 4 {
		return js.ValueOf("expected ship bytes, viewports, width and height")
	}
	var views []byte
	if t := args[1].Type(); t == js.TypeString {
		views = []byte(args[1].String())
	}
	return jsonResult(api.FrameBytes(bytesArg(args[0]), views, args[2].Int(), args[3].Int(), voxel.Options{}))
}

func main() {
	js.Global().Set("shipLayout", js.FuncOf(shipLayout))
	js.Global().Set("shipFrame", js.FuncOf(shipFrame))
	select {}
}
