package shell

import "os"

var survivedSignals = []os.Signal{os.Interrupt}

func signalName(sig os.Signal) string {
	return sig.String()
}
