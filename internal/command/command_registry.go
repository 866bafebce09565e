package command

var registry = map[string]Command{}

// RegisterCommand adds a command to the registry, wrapped in the given
// middlewares outermost-first.
func RegisterCommand(cmd Command, middlewares ...Middleware) {
	for i := len(middlewares) - 1; i >= 0; i-- {
		cmd = middlewares[i](cmd)
	}
	registry[cmd.Name()] = cmd
}

func GetCommand(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

func AllCommands() []Command {
	var list []Command
	for _, cmd := range registry {
		list = append(list, cmd)
	}
	return list
}
