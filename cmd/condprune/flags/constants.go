package flags

const Verbose = `v`
const Quiet = `q`
const Plain = `p`
const Help = `h`
const DryRun = `n`
const Strict = `strict`
const Diff = `diff`
const Tree = `tree`
const Config = `config`
const Subdir = `subdir`
const Exclude = `exclude`
const Patterns = `patterns`
