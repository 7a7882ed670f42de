package extdeps

// Standard is the set of Python standard-library top-level module names.
// This is a curated, non-exhaustive subset covering what first-party
// projects commonly import; anything not first-party and not here falls
// through to the declared/undeclared distribution check.
var Standard = map[string]bool{
	"abc": true, "argparse": true, "array": true, "ast": true,
	"asyncio": true, "base64": true, "bisect": true, "builtins": true,
	"calendar": true, "collections": true, "concurrent": true,
	"configparser": true, "contextlib": true, "copy": true, "csv": true,
	"ctypes": true, "dataclasses": true, "datetime": true, "decimal": true,
	"difflib": true, "dis": true, "email": true, "enum": true,
	"errno": true, "fnmatch": true, "fractions": true, "functools": true,
	"gc": true, "getpass": true, "glob": true, "gzip": true,
	"hashlib": true, "heapq": true, "hmac": true, "html": true,
	"http": true, "importlib": true, "inspect": true, "io": true,
	"ipaddress": true, "itertools": true, "json": true, "keyword": true,
	"logging": true, "math": true, "mimetypes": true, "multiprocessing": true,
	"operator": true, "os": true, "pathlib": true, "pickle": true,
	"platform": true, "pprint": true, "queue": true, "random": true,
	"re": true, "sched": true, "secrets": true, "select": true,
	"shelve": true, "shlex": true, "shutil": true, "signal": true,
	"site": true, "socket": true, "sqlite3": true, "ssl": true,
	"stat": true, "statistics": true, "string": true, "struct": true,
	"subprocess": true, "sys": true, "sysconfig": true, "tempfile": true,
	"textwrap": true, "threading": true, "time": true, "tkinter": true,
	"token": true, "tokenize": true, "traceback": true, "types": true,
	"typing": true, "unicodedata": true, "unittest": true, "urllib": true,
	"uuid": true, "venv": true, "warnings": true, "weakref": true,
	"webbrowser": true, "xml": true, "xmlrpc": true, "zipfile": true,
	"zlib": true, "__future__": true,
}
