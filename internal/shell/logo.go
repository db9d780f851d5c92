package shell

// logo greets the user on the entry screen.
const logo = `
  _____                                 _____             _
 | ____|_  ___ __   ___ _ __  ___  ___|_   _| __ __ _  __| | _____ _ __
 |  _| \ \/ / '_ \ / _ \ '_ \/ __|/ _ \ | || '__/ _' |/ _' |/ / _ \ '__|
 | |___ >  <| |_) |  __/ | | \__ \  __/ | || | | (_| | (_| |   <  __/ |
 |_____/_/\_\ .__/ \___|_| |_|___/\___| |_||_|  \__,_|\__,_|_|\_\___|_|
            |_|
`
