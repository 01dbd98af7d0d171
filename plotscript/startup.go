package plotscript

import (
	"fmt"
	"os"
)

// StartupProgram defines the constructors renderers rely on:
// make-point, make-line and make-text.
const StartupProgram = `
(begin
  (define make-point
    (lambda (x y)
      (set-property "size" 0
        (set-property "object-name" "point" (list x y)))))

  (define make-line
    (lambda (p1 p2)
      (set-property "thickness" 1
        (set-property "object-name" "line" (list p1 p2)))))

  (define make-text
    (lambda (str)
      (set-property "text-rotation" 0
        (set-property "text-scale" 1
          (set-property "position" (make-point 0 0)
            (set-property "object-name" "text" str))))))
)
`

// LoadStartup returns the program in path, or StartupProgram when
// path is empty.
func LoadStartup(path string) (string, error) {
	if path == "" {
		return StartupProgram, nil
	}
	by, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading startup file: %w", err)
	}
	return string(by), nil
}

// RunStartup evaluates program in interp.
func RunStartup(interp *Interpreter, program string) error {
	_, err := interp.EvalString(program)
	if err != nil {
		return fmt.Errorf("startup program failed: %w", err)
	}
	return nil
}
