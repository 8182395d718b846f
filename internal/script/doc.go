// Package script runs a user Lua script against live input state.
//
// A script defines a global frame function. The host calls it once per
// rendered frame with the elapsed time in seconds, and the returned string
// becomes the status line:
//
//	function frame(dt)
//	  local dx, dy = input.delta()
//	  if input.pressed("w") then
//	    return string.format("forward %.0f,%.0f", dx, dy)
//	  end
//	  return "idle"
//	end
//
// The state opens only the base, table, string and math libraries. The
// input table is read-only from the script's point of view; nothing a
// script does can change tracker state.
package script
