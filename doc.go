/*
Package shader manages the lifecycle of linked vertex+fragment shader programs on a
graphics device.

# Overview

A program is built in a fixed order: both stages are compiled, a program object is created
with both stages attached (even if one failed to compile), the program is linked, and the
stage objects are released. Construction always yields a [Program]; it is only usable when
linking succeeded.

	mgr := shader.NewManager(opengl.NewDevice())

	prog, err := mgr.Build(vertexSource, fragmentSource)
	if err != nil {
	    // compile and link diagnostics, already logged
	}
	defer prog.Delete()

	for !window.ShouldClose() {
	    if err := prog.Use(); err != nil {
	        // program did not link
	    }
	    prog.SetFloat("brightness", 0.8)
	    mesh.Draw()
	}

# Devices

The manager never calls a graphics API directly. It drives a [Device], which the
backend/opengl package implements with go-gl. Tests use an in-memory device.

# Failure handling

Stage compilation failures are values ([CompileResult]) combined at link time. By default
a failed stage does not stop construction, matching the Learn OpenGL tutorial flow; the
link then fails and the program reports the link log. [WithStrict] stops after the compile
step instead.

Uniform names that do not resolve are logged at warn level and ignored.

# Hot reload

[Watcher] reports changes to shader source files; [Manager.Watch] creates one that logs
through the manager's logger. It never touches the device: the render
loop drains [Watcher.Changed] and calls [Manager.Rebuild], which swaps programs only when the
replacement links.

# Threading

A Manager is not safe for concurrent use. The device context must be current on the calling
goroutine, which for GLFW means the main goroutine locked to its OS thread.
*/
package shader
