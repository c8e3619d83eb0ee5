package sconf

// DefaultServerName is the fallback process name when neither the
// proc_name setting nor the runtime supplies one.
const DefaultServerName = "sconf"

// builtinSettings is the declarative table of standard server
// settings. Slice order is declaration order; names must be unique.
func builtinSettings() []*Setting {
	return []*Setting{
		{
			Name:     "config",
			Section:  "Config File",
			Flags:    []string{"-c", "--config"},
			Meta:     "FILE",
			Kind:     KindString,
			Validate: ValidateString,
			Default:  "config.py",
			Desc: "The path to a server config file.\n\n" +
				"Only has an effect when specified on the command line or as part of an\n" +
				"application specific configuration.",
		},
		{
			Name:     "workers",
			Section:  "Worker Processes",
			Flags:    []string{"-w", "--workers"},
			Kind:     KindInt,
			Validate: ValidatePosInt,
			Default:  1,
			Desc: "The number of worker processes for handling requests.\n\n" +
				"With a multi-process concurrency a number in the 2-4 x NUM_CORES range\n" +
				"should be good. With threads this number can be higher.",
		},
		{
			Name:     "concurrency",
			Section:  "Worker Processes",
			Flags:    []string{"--concurrency"},
			Kind:     KindString,
			Validate: ValidateString,
			Default:  "process",
			Desc:     "The type of concurrency to use: process or thread.",
		},
		{
			Name:     "max_requests",
			Section:  "Worker Processes",
			Flags:    []string{"--max-requests"},
			Kind:     KindInt,
			Validate: ValidatePosInt,
			Default:  0,
			Desc: "The maximum number of requests a worker will process before restarting.\n\n" +
				"Any value greater than zero limits the number of requests a worker\n" +
				"will process before automatically restarting, a simple way to contain\n" +
				"memory leaks. Zero disables automatic worker restarts.",
		},
		{
			Name:     "timeout",
			Section:  "Worker Processes",
			Flags:    []string{"-t", "--timeout"},
			Kind:     KindInt,
			Validate: ValidatePosInt,
			Default:  30,
			Desc: "Workers silent for more than this many seconds are killed and restarted.\n\n" +
				"Generally set to thirty seconds. Only set it noticeably higher if you\n" +
				"are sure of the repercussions for sync workers.",
		},
		{
			Name:     "keepalive",
			Section:  "Worker Processes",
			Flags:    []string{"--keep-alive"},
			Kind:     KindInt,
			Validate: ValidatePosInt,
			Default:  2,
			Desc: "The number of seconds to wait for requests on a keep-alive connection.\n\n" +
				"Generally set in the 1-5 seconds range.",
		},
		{
			Name:     "http_proxy",
			Section:  "Http Client",
			Flags:    []string{"--http-proxy"},
			Kind:     KindString,
			Validate: ValidateString,
			Default:  "",
			Desc:     "The HTTP proxy server to use with the HTTP client.",
		},
		{
			Name:     "debug",
			Section:  "Debugging",
			Flags:    []string{"--debug"},
			Kind:     KindBool,
			Validate: ValidateBool,
			Default:  false,
			Desc: "Turn on debugging in the server.\n\n" +
				"This limits the number of worker processes to 1 and changes some\n" +
				"error handling that is sent to clients.",
		},
		{
			Name:     "daemon",
			Section:  "Server Mechanics",
			Flags:    []string{"-D", "--daemon"},
			Kind:     KindBool,
			Validate: ValidateBool,
			Default:  false,
			Desc: "Daemonize the server process.\n\n" +
				"Detaches the server from the controlling terminal and enters the\n" +
				"background.",
		},
		{
			Name:     "pidfile",
			Section:  "Server Mechanics",
			Flags:    []string{"-p", "--pid"},
			Meta:     "FILE",
			Kind:     KindString,
			Validate: ValidateString,
			Desc: "A filename to use for the PID file.\n\n" +
				"If not set, no PID file will be written.",
		},
		{
			Name:     "user",
			Section:  "Server Mechanics",
			Flags:    []string{"-u", "--user"},
			Meta:     "USER",
			Kind:     KindString,
			Validate: ValidateString,
			Desc: "Switch worker processes to run as this user.\n\n" +
				"A user name resolvable by the hosting system's identity lookup, or\n" +
				"unset to not change the worker process user.",
		},
		{
			Name:     "group",
			Section:  "Server Mechanics",
			Flags:    []string{"-g", "--group"},
			Meta:     "GROUP",
			Kind:     KindString,
			Validate: ValidateString,
			Desc: "Switch worker processes to run as this group.\n\n" +
				"A group name resolvable by the hosting system's identity lookup, or\n" +
				"unset to not change the worker process group.",
		},
		{
			Name:     "umask",
			Section:  "Server Mechanics",
			Flags:    []string{"-m", "--umask"},
			Kind:     KindInt,
			Validate: ValidatePosInt,
			Default:  0,
			Desc: "A bit mask for the file mode on files written by the server.\n\n" +
				"Note that this affects unix socket permissions. Values are accepted\n" +
				"in any base with a prefix, so \"0\", \"0xFF\" and \"0o22\" are all valid.",
		},
		{
			Name:     "tmp_upload_dir",
			Section:  "Server Mechanics",
			Meta:     "DIR",
			Kind:     KindString,
			Validate: ValidateString,
			Desc: "Directory to store temporary request data as they are read.\n\n" +
				"The path should be writable by the worker processes. If not set, a\n" +
				"system generated temporary directory is used.",
		},
		{
			Name:     "loglevel",
			Section:  "Logging",
			Flags:    []string{"--log-level"},
			Meta:     "LEVEL",
			Kind:     KindString,
			Validate: ValidateString,
			Default:  "info",
			Desc: "The granularity of log outputs.\n\n" +
				"Valid level names are: debug, info, warning, error, critical.",
		},
		{
			Name:     "logevery",
			Section:  "Logging",
			Flags:    []string{"--log-every"},
			Kind:     KindInt,
			Validate: ValidatePosInt,
			Default:  0,
			Desc:     "Log information every n seconds.",
		},
		{
			Name:     "logconfig",
			Section:  "Logging",
			Kind:     KindList,
			Validate: ValidateList,
			Desc: "The logging configuration.\n\n" +
				"This setting can only be specified in a config file.",
		},
		{
			Name:     "proc_name",
			Section:  "Process Naming",
			Flags:    []string{"-n", "--name"},
			Meta:     "STRING",
			Kind:     KindString,
			Validate: ValidateString,
			Desc: "A base to use for process naming.\n\n" +
				"This affects tools like ps and top. When running more than one server\n" +
				"instance, set a name to tell them apart.",
		},
		{
			Name:     "default_proc_name",
			Section:  "Process Naming",
			Kind:     KindString,
			Validate: ValidateString,
			Default:  DefaultServerName,
			Desc:     "Internal setting that is adjusted for each type of application.",
		},
		{
			Name:     "when_ready",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateProcessHook,
			Default:  ProcessHook(noopProcessHook),
			Desc: "Called just after the server is started.\n\n" +
				"The hook receives the server process.",
		},
		{
			Name:     "pre_fork",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateProcessHook,
			Default:  ProcessHook(noopProcessHook),
			Desc: "Called just before a worker is forked.\n\n" +
				"The hook receives the new worker process.",
		},
		{
			Name:     "post_fork",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateProcessHook,
			Default:  ProcessHook(noopProcessHook),
			Desc: "Called just after a worker has been forked.\n\n" +
				"The hook receives the new worker process.",
		},
		{
			Name:     "pre_exec",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateProcessHook,
			Default:  ProcessHook(noopProcessHook),
			Desc: "Called just before a new master process is forked.\n\n" +
				"The hook receives the server process.",
		},
		{
			Name:     "pre_request",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateRequestHook,
			Default:  RequestHook(logRequestHook),
			Desc: "Called just before a worker processes the request.\n\n" +
				"The hook receives the worker process and the request.",
		},
		{
			Name:     "post_request",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateRequestHook,
			Default:  RequestHook(noopRequestHook),
			Desc: "Called after a worker processes the request.\n\n" +
				"The hook receives the worker process and the request.",
		},
		{
			Name:     "worker_exit",
			Section:  "Server Hooks",
			Kind:     KindCallable,
			Validate: ValidateProcessHook,
			Default:  ProcessHook(noopProcessHook),
			Desc: "Called just after a worker has exited.\n\n" +
				"The hook receives the just-exited worker process.",
		},
	}
}
